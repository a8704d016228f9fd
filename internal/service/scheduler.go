package service

import "time"

// Timer is a handle to a scheduled task.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Navigator receives navigation side effects of a form.
type Navigator interface {
	Navigate(formID, target string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(formID, target string)

func (fn NavigatorFunc) Navigate(formID, target string) { fn(formID, target) }
