// internal/scoring/helpers_test.go
package scoring

// Shared builders for scoring tests.

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func testContext() *StudentContext {
	return &StudentContext{
		IsDomestic:        true,
		CitizenshipStatus: "US_CITIZEN",
		GPA:               3.8,
		IntendedMajor:     "Computer Science",
		IncomeTier:        IncomeTierMedium,
	}
}

func testUniversity(name string) *UniversityData {
	return &UniversityData{
		Name:     name,
		HasMajor: true,
	}
}
