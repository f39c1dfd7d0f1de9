package metrics

// Recorder implements auth.Recorder on the prometheus collectors. Install it
// with auth.Middleware.SetRecorder.
type Recorder struct{}

func (Recorder) Decision(outcome string) { authDecisions.WithLabelValues(outcome).Inc() }
func (Recorder) Refresh(result string)   { tokenRefreshes.WithLabelValues(result).Inc() }
func (Recorder) Issued()                 { tokensIssued.Inc() }
func (Recorder) Destroyed()              { tokensDestroyed.Inc() }
