package service

import (
	"fmt"

	"github.com/campuscard/portal-gateway/internal/core/domain"
)

// Catalog is the static list of faculties and departments offered at signup.
type Catalog struct {
	faculties   []domain.Faculty
	departments []domain.Department
}

func DefaultCatalog() *Catalog {
	return &Catalog{
		faculties: []domain.Faculty{
			{ID: 1, Name: "Computer Science", Years: 4},
			{ID: 2, Name: "Engineering", Years: 5},
			{ID: 3, Name: "Business Administration", Years: 4},
			{ID: 4, Name: "Medicine", Years: 6},
			{ID: 5, Name: "Law", Years: 4},
		},
		departments: []domain.Department{
			{ID: 1, FacultyID: 1, Name: "Software Engineering"},
			{ID: 2, FacultyID: 1, Name: "Artificial Intelligence"},
			{ID: 3, FacultyID: 1, Name: "Cybersecurity"},
			{ID: 4, FacultyID: 1, Name: "Data Science"},

			{ID: 5, FacultyID: 2, Name: "Mechanical Engineering"},
			{ID: 6, FacultyID: 2, Name: "Electrical Engineering"},
			{ID: 7, FacultyID: 2, Name: "Civil Engineering"},
			{ID: 8, FacultyID: 2, Name: "Chemical Engineering"},

			{ID: 9, FacultyID: 3, Name: "Marketing"},
			{ID: 10, FacultyID: 3, Name: "Finance"},
			{ID: 11, FacultyID: 3, Name: "Human Resources"},
			{ID: 12, FacultyID: 3, Name: "Management"},

			{ID: 13, FacultyID: 4, Name: "General Medicine"},
			{ID: 14, FacultyID: 4, Name: "Surgery"},
			{ID: 15, FacultyID: 4, Name: "Pediatrics"},
			{ID: 16, FacultyID: 4, Name: "Cardiology"},

			{ID: 17, FacultyID: 5, Name: "Criminal Law"},
			{ID: 18, FacultyID: 5, Name: "Civil Law"},
			{ID: 19, FacultyID: 5, Name: "International Law"},
			{ID: 20, FacultyID: 5, Name: "Corporate Law"},
		},
	}
}

func (c *Catalog) Faculties() []domain.Faculty {
	return append([]domain.Faculty(nil), c.faculties...)
}

func (c *Catalog) Departments() []domain.Department {
	return append([]domain.Department(nil), c.departments...)
}

// DepartmentsFor returns the departments of one faculty, in catalog order.
func (c *Catalog) DepartmentsFor(facultyID int) []domain.Department {
	var out []domain.Department
	for _, d := range c.departments {
		if d.FacultyID == facultyID {
			out = append(out, d)
		}
	}
	return out
}

func (c *Catalog) faculty(id int) (domain.Faculty, bool) {
	for _, f := range c.faculties {
		if f.ID == id {
			return f, true
		}
	}
	return domain.Faculty{}, false
}

// Check verifies that the department belongs to the faculty and the year is
// one the faculty teaches.
func (c *Catalog) Check(facultyID, departmentID, year int) error {
	f, ok := c.faculty(facultyID)
	if !ok {
		return fmt.Errorf("%w: faculty is required", domain.ErrValidation)
	}

	found := false
	for _, d := range c.DepartmentsFor(facultyID) {
		if d.ID == departmentID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: department is required", domain.ErrValidation)
	}

	if year < 1 || year > f.Years {
		return fmt.Errorf("%w: academic year must be between 1 and %d", domain.ErrValidation, f.Years)
	}
	return nil
}
