package round

// Feedback is what a presentation layer shows for a round.
type Feedback struct {
	Pending     bool
	Correct     bool
	UserSum     int
	CorrectSum  int
	Explanation string
	Notice      *Notice
}

// HasExplanation reports whether there is a worked solution to show.
func (f Feedback) HasExplanation() bool {
	return !f.Pending && f.Notice == nil && !f.Correct && f.Explanation != ""
}

// Feedback summarizes the round for display. When the model judged the
// answer correct its correctSum and explanation are not shown.
func (r *Round) Feedback() (Feedback, bool) {
	switch r.Phase {
	case PhaseSubmitted:
		return Feedback{Pending: true, UserSum: r.LastAttempt.UserSum}, true
	case PhaseFailed:
		return Feedback{Notice: r.Notice, UserSum: r.LastAttempt.UserSum}, true
	case PhaseResolved:
		f := Feedback{Correct: r.Result.IsCorrect, UserSum: r.LastAttempt.UserSum}
		if !f.Correct {
			f.CorrectSum = r.Result.CorrectSum
			f.Explanation = r.Result.Explanation
		}
		return f, true
	default:
		return Feedback{}, false
	}
}
