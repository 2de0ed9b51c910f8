package validation

// Verbatim validator error strings. Frontend clients match on these, so the
// wording is a compatibility contract.
const (
	ErrMsgNotAnObject    = "Each tutor request must be an object"
	ErrMsgStudentEmail   = "studentEmail is required and must be valid"
	ErrMsgStudentName    = "studentName is required"
	ErrMsgPhone          = "phone is required"
	ErrMsgCity           = "city is required"
	ErrMsgLocation       = "location is required"
	ErrMsgClassCourse    = "classCourse is required"
	ErrMsgSubjects       = "subjects must include at least one value"
	ErrMsgSalaryPositive = "salary must be a positive number"
)

// serverOwnedFields are always assigned by the server and stripped from any
// client payload.
var serverOwnedFields = []string{"tuitionId", "createdAt", "appliedTutors"}

// Result is the outcome of validating one tutor-request payload.
// Sanitized is populated (even when invalid) so callers can report what was
// understood, except for the non-object guard case where it is nil. Callers
// must check IsValid before persisting Sanitized.
type Result struct {
	IsValid   bool
	Errors    []string
	Sanitized map[string]interface{}
}

// ValidateTutorRequest sanitizes and validates a raw decoded tutor-request
// payload. Every required-field failure is accumulated rather than
// short-circuiting, so a response can report the full shape of what is wrong
// with the payload.
//
// Legacy clients send alternate key names; each field resolves through its
// fallback chain before sanitization.
func ValidateTutorRequest(payload interface{}) Result {
	obj, ok := payload.(map[string]interface{})
	if !ok || obj == nil {
		return Result{
			IsValid:   false,
			Errors:    []string{ErrMsgNotAnObject},
			Sanitized: nil,
		}
	}

	var errs []string
	sanitized := make(map[string]interface{}, len(obj)+4)
	for key, value := range obj {
		sanitized[key] = value
	}

	studentEmail := NormalizeEmail(firstTruthy(obj, "studentEmail", "email"))
	sanitized["studentEmail"] = studentEmail
	if studentEmail == "" {
		errs = append(errs, ErrMsgStudentEmail)
	}

	studentName := SanitizeString(firstTruthy(obj, "studentName", "name"))
	sanitized["studentName"] = studentName
	if studentName == "" {
		errs = append(errs, ErrMsgStudentName)
	}

	phone := SanitizeString(firstTruthy(obj, "phone", "contactNumber", "guardianPhone", "mobile"))
	sanitized["phone"] = phone
	if phone == "" {
		errs = append(errs, ErrMsgPhone)
	}

	city := SanitizeString(obj["city"])
	sanitized["city"] = city
	if city == "" {
		errs = append(errs, ErrMsgCity)
	}

	location := SanitizeString(obj["location"])
	sanitized["location"] = location
	if location == "" {
		errs = append(errs, ErrMsgLocation)
	}

	classCourse := SanitizeString(firstTruthy(obj, "classCourse", "classLevel"))
	sanitized["classCourse"] = classCourse
	if classCourse == "" {
		errs = append(errs, ErrMsgClassCourse)
	}

	subjects := NormalizeSubjects(firstTruthy(obj, "subjects", "subject"))
	if len(subjects) == 0 {
		errs = append(errs, ErrMsgSubjects)
	} else {
		sanitized["subjects"] = subjects
	}

	if salary, ok := ToPositiveNumber(obj["salary"]); ok {
		sanitized["salary"] = salary
	} else {
		errs = append(errs, ErrMsgSalaryPositive)
	}

	// Optional numeric fields: included only when they coerce cleanly,
	// silently omitted otherwise. No error is raised either way.
	for _, field := range []string{"daysPerWeek", "weeklyDuration"} {
		if num, ok := ToPositiveNumber(obj[field]); ok {
			sanitized[field] = num
		} else {
			delete(sanitized, field)
		}
	}

	sanitized["description"] = SanitizeString(obj["description"])

	for _, field := range serverOwnedFields {
		delete(sanitized, field)
	}

	return Result{
		IsValid:   len(errs) == 0,
		Errors:    errs,
		Sanitized: sanitized,
	}
}

// firstTruthy resolves a field through its fallback chain, returning the
// first value a JavaScript client would consider truthy. Empty strings,
// zero numbers, false, and null all fall through to the next key.
func firstTruthy(obj map[string]interface{}, keys ...string) interface{} {
	for _, key := range keys {
		value, present := obj[key]
		if !present {
			continue
		}
		switch v := value.(type) {
		case nil:
			continue
		case string:
			if v != "" {
				return v
			}
		case float64:
			if v != 0 {
				return v
			}
		case bool:
			if v {
				return v
			}
		default:
			return v
		}
	}
	return nil
}
