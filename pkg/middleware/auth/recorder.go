package auth

// Recorder receives auth lifecycle events. The prometheus implementation
// lives in middleware/metrics; the default discards everything so the core
// carries no metrics dependency.
type Recorder interface {
	Decision(outcome string)
	Refresh(result string)
	Issued()
	Destroyed()
}

// Decision outcomes / refresh results reported to the Recorder.
const (
	OutcomePass                 = "pass"
	OutcomeExempt               = "exempt"
	OutcomeRejectAuthentication = "reject_authentication"
	OutcomeRejectAuthorization  = "reject_authorization"

	RefreshRenewed = "renewed"
	RefreshExpired = "expired"
	RefreshDenied  = "denied"
)

type nopRecorder struct{}

func (nopRecorder) Decision(string) {}
func (nopRecorder) Refresh(string)  {}
func (nopRecorder) Issued()         {}
func (nopRecorder) Destroyed()      {}
