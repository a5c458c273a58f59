package session

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// CourseType tags the kind of offering a course code describes.
type CourseType string

const (
	CourseTypeFoundation CourseType = "FC"
	CourseTypeAdvanced   CourseType = "AC"
	CourseTypeSpecialist CourseType = "SC"
)

func (t CourseType) Valid() bool {
	switch t {
	case CourseTypeFoundation, CourseTypeAdvanced, CourseTypeSpecialist:
		return true
	}
	return false
}

const (
	courseCodePrefixLen = 3
	courseCodeMinNumber = 10
	courseCodeMaxNumber = 990
	courseCodeStep      = 10

	// CourseCodeLen is the length of the canonical "PPP-TT-NNN" form.
	CourseCodeLen = 10
)

// CourseCode is the structured identifier of a course offering type:
// a 3-letter prefix derived from the subject, a course-type tag, and a
// numeric suffix that advances in steps of 10.
type CourseCode struct {
	prefix     string
	courseType CourseType
	number     int
}

func NewCourseCode(prefix string, courseType CourseType, number int) (CourseCode, error) {
	const op = "NewCourseCode"
	if len(prefix) != courseCodePrefixLen || !isUpperAlpha(prefix) {
		return CourseCode{}, NewError(CodeValidation, op, "prefix must be 3 uppercase letters", nil)
	}
	if !courseType.Valid() {
		return CourseCode{}, NewError(CodeValidation, op, fmt.Sprintf("unknown course type %q", string(courseType)), nil)
	}
	if number < courseCodeMinNumber || number > courseCodeMaxNumber || number%courseCodeStep != 0 {
		return CourseCode{}, NewError(CodeValidation, op, "number must be a multiple of 10 in [10,990]", nil)
	}
	return CourseCode{prefix: prefix, courseType: courseType, number: number}, nil
}

// DeriveCourseCodePrefix builds the 3-letter prefix from a course subject.
func DeriveCourseCodePrefix(subject string) (string, error) {
	letters := make([]rune, 0, courseCodePrefixLen)
	for _, r := range subject {
		if unicode.IsLetter(r) {
			letters = append(letters, unicode.ToUpper(r))
			if len(letters) == courseCodePrefixLen {
				break
			}
		}
	}
	if len(letters) < courseCodePrefixLen {
		return "", NewError(CodeValidation, "DeriveCourseCodePrefix", "subject needs at least 3 letters", nil)
	}
	return string(letters), nil
}

// ParseCourseCode accepts only the canonical form produced by String.
func ParseCourseCode(s string) (CourseCode, error) {
	const op = "ParseCourseCode"
	if len(s) != CourseCodeLen {
		return CourseCode{}, NewError(CodeValidation, op, fmt.Sprintf("course code must be %d characters", CourseCodeLen), nil)
	}
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return CourseCode{}, NewError(CodeValidation, op, "course code must have 3 dash-separated parts", nil)
	}
	number, err := strconv.Atoi(parts[2])
	if err != nil {
		return CourseCode{}, NewError(CodeValidation, op, "numeric suffix is not a number", err)
	}
	return NewCourseCode(parts[0], CourseType(parts[1]), number)
}

func (c CourseCode) String() string {
	return fmt.Sprintf("%s-%s-%03d", c.prefix, c.courseType, c.number)
}

func (c CourseCode) Prefix() string   { return c.prefix }
func (c CourseCode) Type() CourseType { return c.courseType }
func (c CourseCode) Number() int      { return c.number }

func (c CourseCode) IsZero() bool { return c == CourseCode{} }

// Next yields the following code in the sequence for the same prefix
// and course type.
func (c CourseCode) Next() (CourseCode, error) {
	return NewCourseCode(c.prefix, c.courseType, c.number+courseCodeStep)
}

func isUpperAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
