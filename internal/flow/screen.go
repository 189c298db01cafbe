package flow

import "fmt"

// Screen identifies the active panel of the portal.
type Screen string

const (
	ScreenLanding           Screen = "landing"
	ScreenSignup            Screen = "signup"
	ScreenLogin             Screen = "login"
	ScreenPostLoginChoice   Screen = "post_login_choice"
	ScreenProvisioning      Screen = "provisioning"
	ScreenPaymentPending    Screen = "payment_pending"
	ScreenPayment           Screen = "payment"
	ScreenSuccessValidation Screen = "success_validation"
)

// Screens lists every valid Screen in flow order.
var Screens = []Screen{
	ScreenLanding,
	ScreenSignup,
	ScreenLogin,
	ScreenPostLoginChoice,
	ScreenProvisioning,
	ScreenPaymentPending,
	ScreenPayment,
	ScreenSuccessValidation,
}

// Valid reports whether s is one of the defined screens.
func (s Screen) Valid() bool {
	for _, known := range Screens {
		if s == known {
			return true
		}
	}
	return false
}

// ParseScreen converts a screen name (as used on the command line) to a Screen.
func ParseScreen(name string) (Screen, error) {
	s := Screen(name)
	if !s.Valid() {
		return "", fmt.Errorf("unknown screen %q", name)
	}
	return s, nil
}

// Event is a user action delivered by the presentation surface.
type Event int

const (
	EventChooseSignup Event = iota
	EventChooseLogin
	EventSubmitCredentials
	EventChooseAlreadyPaid
	EventChooseNotPaid
	EventGoToPayment
	EventTriggerDecorativeConfirm
	EventCopyPaymentKey
	EventGoBack
)

// String returns the event name used in logs.
func (e Event) String() string {
	switch e {
	case EventChooseSignup:
		return "choose_signup"
	case EventChooseLogin:
		return "choose_login"
	case EventSubmitCredentials:
		return "submit_credentials"
	case EventChooseAlreadyPaid:
		return "choose_already_paid"
	case EventChooseNotPaid:
		return "choose_not_paid"
	case EventGoToPayment:
		return "go_to_payment"
	case EventTriggerDecorativeConfirm:
		return "trigger_decorative_confirm"
	case EventCopyPaymentKey:
		return "copy_payment_key"
	case EventGoBack:
		return "go_back"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// OutcomeKind tells the controller what to do with an event.
type OutcomeKind int

const (
	// OutcomeNone means the event does not apply to the current screen.
	OutcomeNone OutcomeKind = iota
	// OutcomeGoto switches directly to Outcome.Screen.
	OutcomeGoto
	// OutcomeProvision starts a provisioning run that ends on Outcome.Screen.
	OutcomeProvision
	// OutcomeCopy performs the payment-key copy side effect.
	OutcomeCopy
)

// Outcome is the result of looking up (screen, event) in the transition table.
type Outcome struct {
	Kind   OutcomeKind
	Screen Screen
}

type transitionKey struct {
	from  Screen
	event Event
}

var transitions = map[transitionKey]Outcome{
	{ScreenLanding, EventChooseSignup}:              {OutcomeGoto, ScreenSignup},
	{ScreenLanding, EventChooseLogin}:               {OutcomeGoto, ScreenLogin},
	{ScreenSignup, EventSubmitCredentials}:          {OutcomeProvision, ScreenPaymentPending},
	{ScreenLogin, EventSubmitCredentials}:           {OutcomeGoto, ScreenPostLoginChoice},
	{ScreenPostLoginChoice, EventChooseAlreadyPaid}: {OutcomeProvision, ScreenSuccessValidation},
	{ScreenPostLoginChoice, EventChooseNotPaid}:     {OutcomeProvision, ScreenPaymentPending},
	{ScreenPaymentPending, EventGoToPayment}:        {OutcomeGoto, ScreenPayment},
	{ScreenPayment, EventTriggerDecorativeConfirm}:  {OutcomeProvision, ScreenSuccessValidation},
	{ScreenPayment, EventCopyPaymentKey}:            {OutcomeCopy, ScreenPayment},
	{ScreenSuccessValidation, EventGoBack}:          {OutcomeGoto, ScreenPostLoginChoice},
	{ScreenPayment, EventGoBack}:                    {OutcomeGoto, ScreenPostLoginChoice},
	{ScreenPostLoginChoice, EventGoBack}:            {OutcomeGoto, ScreenLanding},
	{ScreenSignup, EventGoBack}:                     {OutcomeGoto, ScreenLanding},
	{ScreenLogin, EventGoBack}:                      {OutcomeGoto, ScreenLanding},
	{ScreenPaymentPending, EventGoBack}:             {OutcomeGoto, ScreenLanding},
}

// Next looks up the transition for event on screen. Pairs not in the table
// yield OutcomeNone.
func Next(screen Screen, event Event) Outcome {
	if out, ok := transitions[transitionKey{screen, event}]; ok {
		return out
	}
	return Outcome{Kind: OutcomeNone}
}

// BackTarget returns the screen reached by back navigation from s, and false
// when back navigation is unavailable (Landing, Provisioning).
func BackTarget(s Screen) (Screen, bool) {
	out := Next(s, EventGoBack)
	if out.Kind != OutcomeGoto {
		return "", false
	}
	return out.Screen, true
}
