package canvas

// Comment is a single submission comment.
type Comment struct {
	ID       int64  `json:"id"`
	AuthorID int64  `json:"author_id"`
	Comment  string `json:"comment"`
}

// Group is a student group attached to a group submission. Members are in
// the order the Canvas API returns them.
type Group struct {
	ID      int64
	Name    string
	Members []User
}

// Submission is either an IndividualSubmission or a GroupSubmission. The
// two shapes are distinct types rather than one struct with optional
// accessors, so call sites switch on the concrete type.
type Submission interface {
	// UserID is the Canvas user the submission is keyed by; submission
	// comments are addressed through it for both shapes.
	UserID() int64

	// Comments returns the submission comments in posting order.
	Comments() []Comment

	submission()
}

// IndividualSubmission is a submission handed in by a single student.
type IndividualSubmission struct {
	ID                 int64
	Submitter          User
	SubmissionComments []Comment
}

func (s *IndividualSubmission) UserID() int64       { return s.Submitter.ID }
func (s *IndividualSubmission) Comments() []Comment { return s.SubmissionComments }
func (s *IndividualSubmission) submission()         {}

// GroupSubmission is a submission shared by the members of a group.
type GroupSubmission struct {
	ID                 int64
	SubmitterID        int64
	Group              Group
	SubmissionComments []Comment
}

func (s *GroupSubmission) UserID() int64       { return s.SubmitterID }
func (s *GroupSubmission) Comments() []Comment { return s.SubmissionComments }
func (s *GroupSubmission) submission()         {}
