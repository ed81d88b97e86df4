package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[A-Za-z0-9_]+([.\-]?[A-Za-z0-9_]+)*@[A-Za-z0-9_]+([.\-]?[A-Za-z0-9_]+)*(\.[A-Za-z]{2,3})+$`

	// Person names are letters and spaces
	PersonNamePattern = `^[A-Za-z ]+$`

	// Course names may also carry digits
	CourseNamePattern = `^[A-Za-z0-9 ]+$`

	// Phone numbers: optional leading +, digits with single space or dash separators
	PhonePattern = `^\+?\d+([ \-]?\d+)*$`

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100

	// Phone number digit bounds
	PhoneMinLength = 7
	PhoneMaxLength = 20

	// Score and capacity bounds of a course
	MinPassScore   = 0
	MaxPassScore   = 100
	MinMaxStudents = 1
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email      *regexp.Regexp
	PersonName *regexp.Regexp
	CourseName *regexp.Regexp
	Phone      *regexp.Regexp
}{
	Email:      regexp.MustCompile(EmailPattern),
	PersonName: regexp.MustCompile(PersonNamePattern),
	CourseName: regexp.MustCompile(CourseNamePattern),
	Phone:      regexp.MustCompile(PhonePattern),
}

// PersonName validates a lecturer or student name
func PersonName(name string) bool {
	return NewStringValidation(name).
		WithMinLength(NameMinLength).
		WithMaxLength(NameMaxLength).
		WithPattern(CompiledPatterns.PersonName).
		Validate()
}

// CourseName validates a course name
func CourseName(name string) bool {
	return NewStringValidation(name).
		WithMinLength(NameMinLength).
		WithMaxLength(NameMaxLength).
		WithPattern(CompiledPatterns.CourseName).
		Validate()
}

// Email validates an email address
func Email(email string) bool {
	return NewStringValidation(email).WithMaxLength(255).WithPattern(CompiledPatterns.Email).Validate()
}

// Phone validates a phone number
func Phone(phone string) bool {
	return NewStringValidation(phone).
		WithMinLength(PhoneMinLength).
		WithMaxLength(PhoneMaxLength).
		WithPattern(CompiledPatterns.Phone).
		Validate()
}

// PassScore validates a minimum pass score
func PassScore(score int) bool {
	return NewNumericValidation(score).WithMin(MinPassScore).WithMax(MaxPassScore).Validate()
}

// MaxStudents validates a course capacity
func MaxStudents(n int) bool {
	return NewNumericValidation(n).WithMin(MinMaxStudents).Validate()
}

// String validation
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	// Check if required
	if v.Required && v.Value == "" {
		return false
	}

	// Skip other validations for empty optional values
	if !v.Required && v.Value == "" {
		return true
	}

	// Check min length
	if v.MinLen > 0 && len(v.Value) < v.MinLen {
		return false
	}

	// Check max length
	if v.MaxLen > 0 && len(v.Value) > v.MaxLen {
		return false
	}

	// Check pattern
	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// Numeric validation
type NumericValidation struct {
	Value    int
	Min      int
	Max      int
	Required bool

	hasMin, hasMax bool
}

// NewNumericValidation creates a new numeric validation
func NewNumericValidation(value int) *NumericValidation {
	return &NumericValidation{
		Value:    value,
		Required: true,
	}
}

// WithMin sets minimum value
func (v *NumericValidation) WithMin(min int) *NumericValidation {
	v.Min = min
	v.hasMin = true
	return v
}

// WithMax sets maximum value
func (v *NumericValidation) WithMax(max int) *NumericValidation {
	v.Max = max
	v.hasMax = true
	return v
}

// WithRequired sets if field is required
func (v *NumericValidation) WithRequired(required bool) *NumericValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *NumericValidation) Validate() bool {
	// Check min value
	if v.hasMin && v.Value < v.Min {
		return false
	}

	// Check max value
	if v.hasMax && v.Value > v.Max {
		return false
	}

	return true
}
