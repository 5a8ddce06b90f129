package facultycert

import "time"

const PreviewProfessorID = "000000000"

// PreviewRequest renders a template against sample data, including one cross-listed pair
// and one course of the current term.
func PreviewRequest(t Template, verificationURL string) Request {
	day := func(year int, month time.Month, d int) time.Time {
		return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	}

	professor := UnlinkedProfessor{Name: "SAMPLE PROFESSOR", ExternalID: PreviewProfessorID}
	course := func(term, subject, code, ref string, start, end time.Time, hours int, crossList string) CourseRecord {
		return CourseRecord{
			ProfessorID:     PreviewProfessorID,
			ProfessorName:   professor.Name,
			Term:            term,
			Subject:         subject,
			SubjectCode:     code,
			ReferenceNumber: ref,
			StartDate:       start,
			EndDate:         end,
			ContactHours:    hours,
			CrossListCode:   crossList,
		}
	}

	return Request{
		Professor: professor,
		Courses: []CourseRecord{
			course("202425", "Calculus I", "MAT101", "10001", day(2024, 1, 15), day(2024, 5, 10), 64, ""),
			course("202435", "Physics I", "FIS101", "10002", day(2024, 8, 12), day(2024, 12, 6), 48, "XL1"),
			course("202435", "Physics I Lab", "FIS101L", "10003", day(2024, 8, 12), day(2024, 12, 6), 16, "XL1"),
			course("202525", "Linear Algebra", "MAT201", "10004", day(2025, 1, 13), day(2025, 5, 9), 64, ""),
		},
		Template: t,
		Options: Options{
			ProfessorID:     PreviewProfessorID,
			CurrentTerm:     "202525",
			VerificationURL: verificationURL,
		},
	}
}
