package canvas

// TestStudentName is the display name Canvas gives the synthetic student
// created by "Student View". It never maps to a real Git identity.
const TestStudentName = "Test Student"

// PublicUserFields lists the user fields offered to the mapping wizard, in
// presentation order.
var PublicUserFields = []string{
	"name",
	"sortable_name",
	"short_name",
	"sis_user_id",
	"integration_id",
	"login_id",
	"email",
}

// User is a Canvas user.
//
// See https://canvas.instructure.com/doc/api/users.html
type User struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	SortableName  string `json:"sortable_name"`
	ShortName     string `json:"short_name"`
	SISUserID     string `json:"sis_user_id"`
	IntegrationID string `json:"integration_id"`
	LoginID       string `json:"login_id"`
	Email         string `json:"email"`
}

// Field returns the named public field, or "" when the user has no value
// for it. Absence is data, not a fault.
func (u User) Field(name string) string {
	switch name {
	case "name":
		return u.Name
	case "sortable_name":
		return u.SortableName
	case "short_name":
		return u.ShortName
	case "sis_user_id":
		return u.SISUserID
	case "integration_id":
		return u.IntegrationID
	case "login_id":
		return u.LoginID
	case "email":
		return u.Email
	default:
		return ""
	}
}

// Fields returns all public fields of the user, keyed by field name.
func (u User) Fields() map[string]string {
	fields := make(map[string]string, len(PublicUserFields))
	for _, name := range PublicUserFields {
		fields[name] = u.Field(name)
	}
	return fields
}

// IsTestStudent reports whether this user is the Canvas test student.
func (u User) IsTestStudent() bool { return u.Name == TestStudentName }
