package canvas

import (
	"context"
	"fmt"
	"net/url"

	"canvasbee/internal/table"
)

// Section is a course section.
type Section struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Course is a Canvas course. Its student, section, and assignment
// collections are fetched on first access and cached for the lifetime of
// the value; commands run single-threaded so no locking is needed.
//
// See https://canvas.instructure.com/doc/api/courses.html
type Course struct {
	ID   int64
	Name string

	client       *Client
	sectionStubs []Section

	students    []User
	sections    []Section
	assignments []*Assignment
}

type coursePayload struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Sections []Section `json:"sections"`
}

// Course loads a course, including its section stubs.
func (c *Client) Course(ctx context.Context, courseID int64) (*Course, error) {
	query := url.Values{}
	query.Add("include[]", "sections")

	var payload coursePayload
	if err := c.get(ctx, fmt.Sprintf("/courses/%d", courseID), query, &payload); err != nil {
		return nil, err
	}

	return &Course{
		ID:           payload.ID,
		Name:         payload.Name,
		client:       c,
		sectionStubs: payload.Sections,
	}, nil
}

// Students returns the students enrolled in the course, without the Canvas
// test student. The first call fetches the full listing; later calls reuse
// it.
func (co *Course) Students(ctx context.Context) ([]User, error) {
	if co.students == nil {
		query := url.Values{}
		query.Add("enrollment_type[]", "student")

		users, err := getList[User](ctx, co.client, fmt.Sprintf("/courses/%d/users", co.ID), query)
		if err != nil {
			return nil, err
		}

		users = table.Unique(users, func(u User) int64 { return u.ID })
		students := make([]User, 0, len(users))
		for _, u := range users {
			if u.IsTestStudent() {
				continue
			}
			students = append(students, u)
		}
		co.students = students
	}

	return co.students, nil
}

// Sections returns the sections of the course. A course cross-listed into
// several listings repeats its sections, so the stubs are deduplicated by
// id. With names given, only sections with a matching name are returned.
func (co *Course) Sections(ctx context.Context, names ...string) ([]Section, error) {
	if co.sections == nil {
		co.sections = table.Unique(co.sectionStubs, func(s Section) int64 { return s.ID })
	}

	if len(names) == 0 {
		return co.sections, nil
	}

	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[name] = struct{}{}
	}

	var sections []Section
	for _, s := range co.sections {
		if _, ok := wanted[s.Name]; ok {
			sections = append(sections, s)
		}
	}
	return sections, nil
}

// Assignments lists the assignments of the course. The entries carry no
// submissions; load a single assignment through Client.Assignment for
// those. Fetched once and cached.
func (co *Course) Assignments(ctx context.Context) ([]*Assignment, error) {
	if co.assignments == nil {
		payloads, err := getList[assignmentPayload](ctx, co.client, fmt.Sprintf("/courses/%d/assignments", co.ID), nil)
		if err != nil {
			return nil, err
		}

		assignments := make([]*Assignment, 0, len(payloads))
		for _, p := range payloads {
			assignments = append(assignments, &Assignment{
				ID:              p.ID,
				CourseID:        co.ID,
				Name:            p.Name,
				DueAt:           p.DueAt,
				SubmissionTypes: p.SubmissionTypes,
				GroupCategoryID: p.GroupCategoryID,
			})
		}
		co.assignments = assignments
	}

	return co.assignments, nil
}
