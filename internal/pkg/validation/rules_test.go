package validation

import "testing"

func TestPersonName(t *testing.T) {
	valid := []string{"Yaki", "Chaim Levi", "Al"}
	invalid := []string{"", "A", "R2D2", "O'Neil", "name_with_underscore"}
	for _, v := range valid {
		if !PersonName(v) {
			t.Errorf("PersonName(%q) should be valid", v)
		}
	}
	for _, v := range invalid {
		if PersonName(v) {
			t.Errorf("PersonName(%q) should be invalid", v)
		}
	}
}

func TestCourseName(t *testing.T) {
	if !CourseName("Node js 101") {
		t.Error("digits and spaces should be allowed in course names")
	}
	if CourseName("Node.js") {
		t.Error("punctuation should be rejected in course names")
	}
}

func TestEmail(t *testing.T) {
	valid := []string{"yaki@gmail.com", "first.last@school.ac.il", "a-b@c-d.org"}
	invalid := []string{"", "no-at-sign", "x@y", "x@y.toolong", "a@@b.com"}
	for _, v := range valid {
		if !Email(v) {
			t.Errorf("Email(%q) should be valid", v)
		}
	}
	for _, v := range invalid {
		if Email(v) {
			t.Errorf("Email(%q) should be invalid", v)
		}
	}
}

func TestPhone(t *testing.T) {
	valid := []string{"0541111111", "+972 54 111 1111", "054-111-1111"}
	invalid := []string{"", "123", "phone", "054--1111111", "+972 54 111 1111 1111 1111"}
	for _, v := range valid {
		if !Phone(v) {
			t.Errorf("Phone(%q) should be valid", v)
		}
	}
	for _, v := range invalid {
		if Phone(v) {
			t.Errorf("Phone(%q) should be invalid", v)
		}
	}
}

func TestNumericRules(t *testing.T) {
	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"pass score zero", PassScore(0), true},
		{"pass score hundred", PassScore(100), true},
		{"pass score negative", PassScore(-1), false},
		{"pass score above", PassScore(101), false},
		{"one student", MaxStudents(1), true},
		{"zero students", MaxStudents(0), false},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}
