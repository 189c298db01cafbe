package flow

import "testing"

func TestNext(t *testing.T) {
	tests := []struct {
		name   string
		from   Screen
		event  Event
		kind   OutcomeKind
		target Screen
	}{
		{"landing to signup", ScreenLanding, EventChooseSignup, OutcomeGoto, ScreenSignup},
		{"landing to login", ScreenLanding, EventChooseLogin, OutcomeGoto, ScreenLogin},
		{"signup provisions to pending", ScreenSignup, EventSubmitCredentials, OutcomeProvision, ScreenPaymentPending},
		{"login to choice", ScreenLogin, EventSubmitCredentials, OutcomeGoto, ScreenPostLoginChoice},
		{"already paid provisions to validation", ScreenPostLoginChoice, EventChooseAlreadyPaid, OutcomeProvision, ScreenSuccessValidation},
		{"not paid provisions to pending", ScreenPostLoginChoice, EventChooseNotPaid, OutcomeProvision, ScreenPaymentPending},
		{"pending to payment", ScreenPaymentPending, EventGoToPayment, OutcomeGoto, ScreenPayment},
		{"satellite provisions to validation", ScreenPayment, EventTriggerDecorativeConfirm, OutcomeProvision, ScreenSuccessValidation},
		{"copy stays on payment", ScreenPayment, EventCopyPaymentKey, OutcomeCopy, ScreenPayment},
		{"copy ignored off payment", ScreenPaymentPending, EventCopyPaymentKey, OutcomeNone, ""},
		{"submit ignored on landing", ScreenLanding, EventSubmitCredentials, OutcomeNone, ""},
		{"provisioning ignores back", ScreenProvisioning, EventGoBack, OutcomeNone, ""},
		{"provisioning ignores choices", ScreenProvisioning, EventChooseSignup, OutcomeNone, ""},
		{"validation ignores payment", ScreenSuccessValidation, EventGoToPayment, OutcomeNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Next(tt.from, tt.event)
			if out.Kind != tt.kind {
				t.Errorf("Next(%s, %s).Kind = %v, want %v", tt.from, tt.event, out.Kind, tt.kind)
			}
			if out.Screen != tt.target {
				t.Errorf("Next(%s, %s).Screen = %q, want %q", tt.from, tt.event, out.Screen, tt.target)
			}
		})
	}
}

func TestBackTarget(t *testing.T) {
	tests := []struct {
		from   Screen
		want   Screen
		wantOK bool
	}{
		{ScreenPayment, ScreenPostLoginChoice, true},
		{ScreenSuccessValidation, ScreenPostLoginChoice, true},
		{ScreenPostLoginChoice, ScreenLanding, true},
		{ScreenSignup, ScreenLanding, true},
		{ScreenLogin, ScreenLanding, true},
		{ScreenPaymentPending, ScreenLanding, true},
		{ScreenLanding, "", false},
		{ScreenProvisioning, "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			got, ok := BackTarget(tt.from)
			if ok != tt.wantOK {
				t.Errorf("BackTarget(%s) ok = %v, want %v", tt.from, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("BackTarget(%s) = %q, want %q", tt.from, got, tt.want)
			}
		})
	}
}

func TestParseScreen(t *testing.T) {
	for _, s := range Screens {
		got, err := ParseScreen(string(s))
		if err != nil {
			t.Errorf("ParseScreen(%q) error = %v", s, err)
		}
		if got != s {
			t.Errorf("ParseScreen(%q) = %q", s, got)
		}
	}

	if _, err := ParseScreen("pix"); err == nil {
		t.Error("ParseScreen(\"pix\") should fail")
	}
}

func TestEventString(t *testing.T) {
	if EventGoBack.String() != "go_back" {
		t.Errorf("EventGoBack.String() = %q, want go_back", EventGoBack.String())
	}
	if Event(99).String() != "Event(99)" {
		t.Errorf("Event(99).String() = %q", Event(99).String())
	}
}
