package seeder

import (
	"time"

	"github.com/Rana718/Roster/internal/types"
)

type Teacher struct {
	ID           int
	FirstName    string
	LastName     string
	Birthdate    time.Time
	HireDate     time.Time
	DepartmentID int
	IsFloater    bool
	RoleLabel    string
}

type TeacherSubject struct {
	TeacherID int
	SubjectID int
}

type Classroom struct {
	ID           int
	RoomNumber   string
	Capacity     int
	Floor        int
	Building     string
	IsSpecialUse bool
}

const (
	RoleElementaryHomeroom = "Elementary Homeroom"
	RoleFloater            = "Floater"
	RoleMiddleSchool       = "Middle School Subject"
)

var (
	teacherColumns        = []string{"teacher_id", "first_name", "last_name", "birthdate", "hire_date", "department_id", "is_floater", "role_label"}
	teacherSubjectColumns = []string{"teacher_id", "subject_id"}
	classroomColumns      = []string{"classroom_id", "room_number", "capacity", "floor", "building", "is_special_use"}
)

// SubjectIDs are the fixed catalog ids teacher_subjects points into.
var SubjectIDs = map[string]int{
	"Elementary Core":  101,
	"Math":             201,
	"English":          202,
	"Science":          203,
	"Social Studies":   204,
	"Computer Science": 205,
	"Economics":        206,
	"Art":              301,
	"Music":            302,
	"PE":               303,
	"Health":           304,
	"Spanish":          401,
	"French":           402,
	"Reading Support":  501,
	"ESL":              502,
	"Special Ed":       503,
	"Counseling":       504,
}

type staffRole struct {
	label    string
	subjects []string
}

var (
	coreRoles = []staffRole{
		{"Math Teacher", []string{"Math"}},
		{"English Teacher", []string{"English"}},
		{"Science Teacher", []string{"Science"}},
		{"SocSt Teacher", []string{"Social Studies"}},
		{"CompSci Teacher", []string{"Computer Science"}},
		{"Economics Teacher", []string{"Economics"}},
		{"Integrated Sci/Math", []string{"Science", "Math"}},
	}
	specialsRoles = []staffRole{
		{"Art Teacher", []string{"Art"}},
		{"Music Teacher", []string{"Music"}},
		{"PE Teacher", []string{"PE", "Health"}},
		{"Spanish Teacher", []string{"Spanish"}},
		{"French Teacher", []string{"French"}},
		{"Health Teacher", []string{"Health"}},
	}
	supportRoles = []staffRole{
		{"Reading Specialist", []string{"Reading Support"}},
		{"ESL Specialist", []string{"ESL"}},
		{"Special-Ed Teacher", []string{"Special Ed"}},
		{"School Counselor", []string{"Counseling"}},
	}
)

const (
	homeroomTeachers = 28
	floaterTeachers  = 2
	classroomCount   = 18
)

var specialUseRooms = map[int]bool{3: true, 7: true, 12: true, 16: true}

// subjectDepartments maps a catalog subject to its department_id in the
// departments lookup. Subjects without a department fall under Electives.
var subjectDepartments = map[string]int{
	"Math":             1,
	"Science":          2,
	"English":          3,
	"Social Studies":   4,
	"Economics":        4,
	"Spanish":          5,
	"French":           5,
	"PE":               6,
	"Health":           6,
	"Art":              7,
	"Music":            7,
	"Computer Science": 8,
}

func departmentFor(subjects []string) int {
	if len(subjects) > 0 {
		if id, ok := subjectDepartments[subjects[0]]; ok {
			return id
		}
	}
	return 9
}

// staffRoster is the fixed teacher plan in generation order.
func staffRoster() []staffRole {
	var roster []staffRole
	for i := 0; i < homeroomTeachers; i++ {
		roster = append(roster, staffRole{RoleElementaryHomeroom, []string{"Elementary Core"}})
	}
	roster = append(roster, coreRoles...)
	roster = append(roster, specialsRoles...)
	roster = append(roster, supportRoles...)
	for i := 0; i < floaterTeachers; i++ {
		roster = append(roster, staffRole{label: RoleFloater})
	}
	return roster
}

func newTeacher(g *DataGenerator, id int, role string) Teacher {
	return Teacher{
		ID:        id,
		FirstName: g.FirstName(),
		LastName:  g.LastName(),
		// 25 to 62 years old at the start of the school year
		Birthdate: g.DateBetween(date(1953, time.August, 24), date(1990, time.August, 24)),
		HireDate:  g.DateBetween(date(1995, time.August, 1), date(2015, time.August, 1)),
		RoleLabel: role,
	}
}

// GenerateTeachers builds the staff roster and its subject links.
func GenerateTeachers(g *DataGenerator, alloc *Allocator) ([]Teacher, []TeacherSubject) {
	var teachers []Teacher
	var links []TeacherSubject
	for _, role := range staffRoster() {
		t := newTeacher(g, alloc.NextID("teacher"), role.label)
		t.DepartmentID = departmentFor(role.subjects)
		t.IsFloater = role.label == RoleFloater
		teachers = append(teachers, t)
		for _, subject := range role.subjects {
			links = append(links, TeacherSubject{TeacherID: t.ID, SubjectID: SubjectIDs[subject]})
		}
	}
	return teachers, links
}

func GenerateClassrooms(g *DataGenerator) []Classroom {
	rooms := make([]Classroom, 0, classroomCount)
	for i := 1; i <= classroomCount; i++ {
		floor := 1
		if i > 9 {
			floor = 2
		}
		rooms = append(rooms, Classroom{
			ID:           i,
			RoomNumber:   itoa(100 + i),
			Capacity:     g.IntRange(25, 30),
			Floor:        floor,
			Building:     "Main",
			IsSpecialUse: specialUseRooms[i],
		})
	}
	return rooms
}

func teachersTable(teachers []Teacher) *types.Table {
	return tableOf("teachers", teacherColumns, teachers, func(t Teacher) []string {
		return []string{
			itoa(t.ID), t.FirstName, t.LastName,
			formatDate(t.Birthdate), formatDate(t.HireDate),
			itoa(t.DepartmentID), formatBool(t.IsFloater), t.RoleLabel,
		}
	})
}

func teacherSubjectsTable(links []TeacherSubject) *types.Table {
	return tableOf("teacher_subjects", teacherSubjectColumns, links, func(l TeacherSubject) []string {
		return []string{itoa(l.TeacherID), itoa(l.SubjectID)}
	})
}

func classroomsTable(rooms []Classroom) *types.Table {
	return tableOf("classrooms", classroomColumns, rooms, func(c Classroom) []string {
		return []string{itoa(c.ID), c.RoomNumber, itoa(c.Capacity), itoa(c.Floor), c.Building, formatBool(c.IsSpecialUse)}
	})
}

func decodeTeachers(t *types.Table) ([]Teacher, error) {
	cols, err := indexColumns(t, "teacher_id", "role_label")
	if err != nil {
		return nil, err
	}
	teachers := make([]Teacher, 0, t.Len())
	for _, row := range t.Rows {
		id, err := cols.atoi(row, "teacher_id")
		if err != nil {
			return nil, err
		}
		teacher := Teacher{
			ID:        id,
			FirstName: cols.str(row, "first_name"),
			LastName:  cols.str(row, "last_name"),
			IsFloater: cols.flag(row, "is_floater"),
			RoleLabel: cols.str(row, "role_label"),
		}
		if cols.has("department_id") {
			if teacher.DepartmentID, err = cols.atoi(row, "department_id"); err != nil {
				return nil, err
			}
		}
		if cols.has("birthdate") {
			if teacher.Birthdate, err = cols.day(row, "birthdate"); err != nil {
				return nil, err
			}
		}
		if cols.has("hire_date") {
			if teacher.HireDate, err = cols.day(row, "hire_date"); err != nil {
				return nil, err
			}
		}
		teachers = append(teachers, teacher)
	}
	return teachers, nil
}

func teachersStage() *Stage {
	return &Stage{
		Name:     "teachers",
		Produces: []string{"teachers", "teacher_subjects", "classrooms"},
		Run: func(env *Env) error {
			teachers, links := GenerateTeachers(env.Gen, env.Alloc)
			rooms := GenerateClassrooms(env.Gen)
			return env.Emit(teachersTable(teachers), teacherSubjectsTable(links), classroomsTable(rooms))
		},
	}
}
