package models

// ReadinessState is the derived lifecycle state of a course
type ReadinessState string

const (
	ReadinessDraft    ReadinessState = "draft"     // Nothing authored yet: no syllabus, no sessions
	ReadinessNotReady ReadinessState = "not-ready" // Exactly one of syllabus or sessions is missing
	ReadinessReady    ReadinessState = "ready"     // At least one syllabus entry and one session
)

// ResourceType identifies the kind of resource an admission is serialized on
type ResourceType string

const (
	ResourceRoom     ResourceType = "room"
	ResourceLecturer ResourceType = "lecturer"
	ResourceCourse   ResourceType = "course"
	ResourceStudent  ResourceType = "student"
)
