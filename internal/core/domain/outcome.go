package domain

// Decision is the kind of a guard outcome.
type Decision string

const (
	DecisionAllow    Decision = "allow"
	DecisionRedirect Decision = "redirect"
)

// DenyReason classifies why a guard redirected.
type DenyReason string

const (
	ReasonNone             DenyReason = ""
	ReasonAuthAbsent       DenyReason = "auth_absent"
	ReasonAuthInsufficient DenyReason = "auth_insufficient"
)

// Outcome is the result of evaluating a route guard. It is computed per
// navigation and never persisted.
type Outcome struct {
	Decision Decision
	Target   string
	Reason   DenyReason
}

// Allow returns the outcome that lets the protected view render.
func Allow() Outcome {
	return Outcome{Decision: DecisionAllow}
}

// Redirect returns an outcome that sends the visitor to target.
func Redirect(target string, reason DenyReason) Outcome {
	return Outcome{Decision: DecisionRedirect, Target: target, Reason: reason}
}

// Allowed reports whether the protected view may render.
func (o Outcome) Allowed() bool {
	return o.Decision == DecisionAllow
}
