package model

// Employee is the subset of the remote employee record used for display.
type Employee struct {
	Name string `json:"name"`
}
