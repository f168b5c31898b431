// Package exercises owns the exercise log of a user: appending entries and
// reading the log back with date-range filtering and a result limit.
package exercises

import (
	"net/url"
	"time"

	"github.com/user/exercise-tracker-go/httpx"
)

// AddExerciseRequest is the body of POST /api/users/{id}/exercises.
// Duration accepts a JSON number or string; both are validated the same way.
// @Description Request body for appending an exercise
type AddExerciseRequest struct {
	Description httpx.FlexString `json:"description" swaggertype:"string" example:"run"`
	Duration    httpx.FlexString `json:"duration" swaggertype:"string" example:"30"`
	// Optional. Defaults to the current time.
	Date httpx.FlexString `json:"date,omitempty" swaggertype:"string" example:"2023-01-01"`
}

// BindForm fills the request from an HTML form submission.
func (r *AddExerciseRequest) BindForm(values url.Values) {
	r.Description = httpx.FlexString(values.Get("description"))
	r.Duration = httpx.FlexString(values.Get("duration"))
	r.Date = httpx.FlexString(values.Get("date"))
}

// ExerciseResponse is returned after an exercise has been appended.
// Date is the exact time stored, not the log's display format.
// @Description The appended exercise and its owner
type ExerciseResponse struct {
	ID          string    `json:"_id" example:"65a1c2d3e4f5a6b7c8d9e0f1"`
	Username    string    `json:"username" example:"alice"`
	Date        time.Time `json:"date" example:"2023-01-01T00:00:00Z"`
	Duration    float64   `json:"duration" example:"30"`
	Description string    `json:"description" example:"run"`
}

// LogQuery carries the raw query parameters of GET /api/users/{id}/logs.
type LogQuery struct {
	From  string
	To    string
	Limit string
}

func logQueryFrom(values url.Values) LogQuery {
	return LogQuery{
		From:  values.Get("from"),
		To:    values.Get("to"),
		Limit: values.Get("limit"),
	}
}

// LogEntry is one exercise as shown in a log.
type LogEntry struct {
	Description string  `json:"description" example:"run"`
	Duration    float64 `json:"duration" example:"30"`
	Date        string  `json:"date" example:"Sun Jan 01 2023"`
}

// LogResponse is a user's filtered exercise log. From and To are an addition
// to the classic response shape and only appear when the query set them.
// @Description A user's exercise log. from/to are an extension: they echo the query bounds and are omitted when not supplied.
type LogResponse struct {
	Username string     `json:"username" example:"alice"`
	ID       string     `json:"_id" example:"65a1c2d3e4f5a6b7c8d9e0f1"`
	From     string     `json:"from,omitempty" example:"Sun Jan 01 2023"`
	To       string     `json:"to,omitempty" example:"Tue Jan 31 2023"`
	Count    int        `json:"count" example:"1"`
	Log      []LogEntry `json:"log"`
}
