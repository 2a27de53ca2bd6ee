package task

// DueDateLayout is the wire format of Task.DueDate.
const DueDateLayout = "2006-01-02"

// Statuses and Priorities are the choices offered by the client form. The service
// stores whatever string it is given.
var (
	Statuses   = []string{"Not Started", "In Progress", "Completed"}
	Priorities = []string{"Low", "Medium", "High"}
)

type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
}
