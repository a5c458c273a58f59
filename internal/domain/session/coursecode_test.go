package session

import (
	"testing"
)

func TestCourseCodeRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		prefix     string
		courseType CourseType
		number     int
	}{
		{"GOL", CourseTypeFoundation, 10},
		{"KUB", CourseTypeAdvanced, 120},
		{"SEC", CourseTypeSpecialist, 990},
	} {
		code, err := NewCourseCode(tc.prefix, tc.courseType, tc.number)
		if err != nil {
			t.Fatalf("NewCourseCode(%s,%s,%d): %v", tc.prefix, tc.courseType, tc.number, err)
		}
		formatted := code.String()
		if len(formatted) != CourseCodeLen {
			t.Fatalf("formatted length: want=%d got=%d (%q)", CourseCodeLen, len(formatted), formatted)
		}
		parsed, err := ParseCourseCode(formatted)
		if err != nil {
			t.Fatalf("ParseCourseCode(%q): %v", formatted, err)
		}
		if parsed != code {
			t.Fatalf("round trip: want=%v got=%v", code, parsed)
		}
	}
}

func TestParseCourseCodeRejectsMalformed(t *testing.T) {
	for _, bad := range []string{
		"",
		"GOL-FC-10",   // suffix not zero-padded
		"GOL-FC-0100", // too long
		"gol-FC-010",  // lowercase prefix
		"GOL-XX-010",  // unknown type tag
		"GOL-FC-015",  // not a step of 10
		"GOL-FC-000",  // below minimum
		"GOLFC-0100",  // missing separators
	} {
		if _, err := ParseCourseCode(bad); err == nil {
			t.Fatalf("ParseCourseCode(%q): expected error", bad)
		} else if !IsCode(err, CodeValidation) {
			t.Fatalf("ParseCourseCode(%q): wrong code %q", bad, CodeOf(err))
		}
	}
}

func TestNewCourseCodeValidation(t *testing.T) {
	if _, err := NewCourseCode("GO", CourseTypeFoundation, 10); !IsCode(err, CodeValidation) {
		t.Fatalf("short prefix: want validation, got %v", err)
	}
	if _, err := NewCourseCode("GOL", CourseType("ZZ"), 10); !IsCode(err, CodeValidation) {
		t.Fatalf("bad type: want validation, got %v", err)
	}
	if _, err := NewCourseCode("GOL", CourseTypeFoundation, 1000); !IsCode(err, CodeValidation) {
		t.Fatalf("number above max: want validation, got %v", err)
	}
}

func TestCourseCodeNext(t *testing.T) {
	code, err := NewCourseCode("GOL", CourseTypeFoundation, 10)
	if err != nil {
		t.Fatalf("NewCourseCode: %v", err)
	}
	next, err := code.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if next.Number() != 20 {
		t.Fatalf("next number: want=20 got=%d", next.Number())
	}
	last, err := NewCourseCode("GOL", CourseTypeFoundation, 990)
	if err != nil {
		t.Fatalf("NewCourseCode: %v", err)
	}
	if _, err := last.Next(); err == nil {
		t.Fatalf("Next past 990: expected error")
	}
}

func TestDeriveCourseCodePrefix(t *testing.T) {
	prefix, err := DeriveCourseCodePrefix("go language")
	if err != nil {
		t.Fatalf("DeriveCourseCodePrefix: %v", err)
	}
	if prefix != "GOL" {
		t.Fatalf("prefix: want=GOL got=%s", prefix)
	}
	if _, err := DeriveCourseCodePrefix("ab"); err == nil {
		t.Fatalf("two-letter subject: expected error")
	}
}
