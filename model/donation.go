package model

// DonationRequest carries the submitted form fields of one donation attempt.
// Amount stays the raw submitted string; it is only interpreted at the
// processor boundary so a malformed value cannot crash the handler.
type DonationRequest struct {
	Amount string `form:"amount"`
	Token  string `form:"token"`
	Email  string `form:"email"`
}

type OutcomeKind string

const (
	OutcomeSuccess        OutcomeKind = "success"
	OutcomeDeclined       OutcomeKind = "declined"
	OutcomeProcessorError OutcomeKind = "processor_error"
	OutcomeTransientError OutcomeKind = "transient_error"
)

// ChargeOutcome is the classified result of one processor charge call.
// Status and Body are taken from the processor's own reporting on failure;
// on success both are unused and the response is an empty 200.
type ChargeOutcome struct {
	Kind     OutcomeKind
	Status   int
	Body     map[string]interface{}
	Detail   string
	ChargeID string
}

// Alertable reports whether the outcome should trigger failure notifications.
// Declines are normal user-facing outcomes, not operator-actionable ones.
func (o ChargeOutcome) Alertable() bool {
	return o.Kind == OutcomeProcessorError || o.Kind == OutcomeTransientError
}
