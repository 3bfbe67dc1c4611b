package engine

// Permission is the selection decision for the current procedure.
type Permission int

const (
	// PermissionUndecided means no procedure is open.
	PermissionUndecided Permission = iota
	// PermissionProceed lets the procedure's steps run.
	PermissionProceed
	// PermissionSkip rules the procedure out without a trace.
	PermissionSkip
)

// String returns the string representation of the permission.
func (p Permission) String() string {
	switch p {
	case PermissionProceed:
		return "proceed"
	case PermissionSkip:
		return "skip"
	default:
		return "undecided"
	}
}

type resumeState int

const (
	resumeInactive resumeState = iota
	resumePending
	resumeConsumed
)

// ResumePoint is the one-shot resume-from selector. It skips every
// procedure declared before its target, fires exactly once when the target
// opens, and stays out of later decisions. Procedures after the target run
// even when they share its name.
type ResumePoint struct {
	target string
	state  resumeState
}

// NewResumePoint returns an inactive point when target is empty.
func NewResumePoint(target string) ResumePoint {
	if target == "" {
		return ResumePoint{}
	}
	return ResumePoint{target: target, state: resumePending}
}

// Pending reports whether the point is still waiting for its target.
func (r *ResumePoint) Pending() bool {
	return r.state == resumePending
}

// Target returns the procedure name the point waits for.
func (r *ResumePoint) Target() string {
	return r.target
}

// claim consumes the point when name matches the pending target.
func (r *ResumePoint) claim(name string) bool {
	if r.state == resumePending && name == r.target {
		r.state = resumeConsumed
		return true
	}
	return false
}

// Selector decides whether each procedure may run. The decision follows
// the command line: a single target runs exactly one procedure, a resume
// point skips everything before its target. The single target wins when
// both are set; the resume point is then never consulted.
type Selector struct {
	single string
	resume ResumePoint
}

// NewSelector builds a Selector from the two selection flags.
func NewSelector(single, resumeFrom string) Selector {
	return Selector{single: single, resume: NewResumePoint(resumeFrom)}
}

// Decide returns the permission for the named procedure.
func (s *Selector) Decide(name string) Permission {
	if s.single != "" {
		if name == s.single {
			return PermissionProceed
		}
		return PermissionSkip
	}

	if s.resume.Pending() && !s.resume.claim(name) {
		return PermissionSkip
	}
	return PermissionProceed
}

// Single returns the single-procedure target, if any.
func (s *Selector) Single() string {
	return s.single
}

// ResumePending reports whether a resume target has not matched yet.
func (s *Selector) ResumePending() bool {
	return s.resume.Pending()
}

// ResumeTarget returns the resume-from target, if any.
func (s *Selector) ResumeTarget() string {
	return s.resume.Target()
}
