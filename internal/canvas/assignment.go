package canvas

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"canvasbee/internal/table"
)

// SubmissionTypeOnlineUpload is the submission type an assignment must
// declare before repositories can be handed in through it.
const SubmissionTypeOnlineUpload = "online_upload"

// memberFetchConcurrency bounds the parallel group-member lookups while an
// assignment's submissions are loaded.
const memberFetchConcurrency = 4

// Assignment is a Canvas assignment with its submissions resolved.
//
// See https://canvas.instructure.com/doc/api/assignments.html
type Assignment struct {
	ID              int64
	CourseID        int64
	Name            string
	DueAt           *time.Time
	SubmissionTypes []string
	GroupCategoryID int64

	// Submissions holds one entry per group for group submissions and one
	// per student otherwise, in API order. Nil when the assignment was
	// listed rather than loaded.
	Submissions []Submission
}

// IsGroupAssignment reports whether students hand in as groups.
func (a *Assignment) IsGroupAssignment() bool { return a.GroupCategoryID != 0 }

// HasSubmissionType reports whether the assignment declares the given
// submission type.
func (a *Assignment) HasSubmissionType(name string) bool {
	for _, t := range a.SubmissionTypes {
		if t == name {
			return true
		}
	}
	return false
}

type assignmentPayload struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	DueAt           *time.Time `json:"due_at"`
	SubmissionTypes []string   `json:"submission_types"`
	GroupCategoryID int64      `json:"group_category_id"`
}

type submissionPayload struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
	User   *User `json:"user"`
	Group  *struct {
		ID   *int64 `json:"id"`
		Name string `json:"name"`
	} `json:"group"`
	SubmissionComments []Comment `json:"submission_comments"`
	WorkflowState      string    `json:"workflow_state"`
}

func (p *submissionPayload) isGroupSubmission() bool {
	return p.Group != nil && p.Group.ID != nil
}

// Assignment loads an assignment and all of its submissions. Canvas lists
// one submission record per enrolled student; records sharing a group
// collapse into a single GroupSubmission (first occurrence wins, so
// submission order is preserved), and the group member lists are fetched
// concurrently afterwards.
func (c *Client) Assignment(ctx context.Context, courseID, assignmentID int64) (*Assignment, error) {
	var payload assignmentPayload
	path := fmt.Sprintf("/courses/%d/assignments/%d", courseID, assignmentID)
	if err := c.get(ctx, path, nil, &payload); err != nil {
		return nil, err
	}

	assignment := &Assignment{
		ID:              payload.ID,
		CourseID:        courseID,
		Name:            payload.Name,
		DueAt:           payload.DueAt,
		SubmissionTypes: payload.SubmissionTypes,
		GroupCategoryID: payload.GroupCategoryID,
	}

	query := url.Values{}
	query.Add("include[]", "user")
	query.Add("include[]", "group")
	query.Add("include[]", "submission_comments")

	records, err := getList[*submissionPayload](ctx, c, path+"/submissions", query)
	if err != nil {
		return nil, err
	}

	// One record per group: repeated group records are the same logical
	// submission seen through each member.
	type submissionKey struct {
		group bool
		id    int64
	}
	records = table.Unique(records, func(p *submissionPayload) submissionKey {
		if p.isGroupSubmission() {
			return submissionKey{group: true, id: *p.Group.ID}
		}
		return submissionKey{id: p.UserID}
	})

	for _, record := range records {
		if record.isGroupSubmission() {
			id := *record.Group.ID
			assignment.Submissions = append(assignment.Submissions, &GroupSubmission{
				ID:                 record.ID,
				SubmitterID:        record.UserID,
				Group:              Group{ID: id, Name: record.Group.Name},
				SubmissionComments: record.SubmissionComments,
			})
			continue
		}

		var submitter User
		if record.User != nil {
			submitter = *record.User
		} else {
			submitter = User{ID: record.UserID}
		}
		assignment.Submissions = append(assignment.Submissions, &IndividualSubmission{
			ID:                 record.ID,
			Submitter:          submitter,
			SubmissionComments: record.SubmissionComments,
		})
	}

	if err := c.fillGroupMembers(ctx, assignment.Submissions); err != nil {
		return nil, err
	}

	return assignment, nil
}

// fillGroupMembers resolves the member list of every group submission. The
// lookups only read, so they can run in parallel.
func (c *Client) fillGroupMembers(ctx context.Context, submissions []Submission) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(memberFetchConcurrency)

	for _, submission := range submissions {
		gs, ok := submission.(*GroupSubmission)
		if !ok {
			continue
		}
		g.Go(func() error {
			members, err := getList[User](ctx, c, fmt.Sprintf("/groups/%d/users", gs.Group.ID), nil)
			if err != nil {
				return fmt.Errorf("failed to load members of group %q: %w", gs.Group.Name, err)
			}
			gs.Group.Members = members
			return nil
		})
	}

	return g.Wait()
}

// AddComment posts a text comment on the submission keyed by userID. For
// group assignments the comment fans out to every group member, which is
// also what flips a fresh submission from individual to group in Canvas.
func (c *Client) AddComment(ctx context.Context, courseID, assignmentID, userID int64, text string, groupComment bool) error {
	form := url.Values{}
	form.Set("comment[text_comment]", text)
	if groupComment {
		form.Set("comment[group_comment]", "true")
	}

	path := fmt.Sprintf("/courses/%d/assignments/%d/submissions/%d", courseID, assignmentID, userID)
	return c.submit(ctx, http.MethodPut, path, form)
}

// DeleteComment removes a submission comment.
func (c *Client) DeleteComment(ctx context.Context, courseID, assignmentID, userID, commentID int64) error {
	path := fmt.Sprintf("/courses/%d/assignments/%d/submissions/%d/comments/%d",
		courseID, assignmentID, userID, commentID)
	return c.submit(ctx, http.MethodDelete, path, nil)
}

// SendMessage posts message as a comment on every submission of the
// assignment. Submissions already carrying an identical comment are
// skipped unless resend is set. Returns the number of comments posted.
func (c *Client) SendMessage(ctx context.Context, a *Assignment, message string, resend bool) (int, error) {
	sent := 0

	for _, submission := range a.Submissions {
		if !resend && hasComment(submission, message) {
			continue
		}
		if err := c.AddComment(ctx, a.CourseID, a.ID, submission.UserID(), message, a.IsGroupAssignment()); err != nil {
			return sent, err
		}
		sent++
	}

	return sent, nil
}

func hasComment(s Submission, text string) bool {
	for _, comment := range s.Comments() {
		if comment.Comment == text {
			return true
		}
	}
	return false
}
