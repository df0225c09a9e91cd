package models

// Collection names.
const (
	CollectionGrades         = "grades"
	CollectionClasses        = "classes"
	CollectionSubjects       = "subjects"
	CollectionLessons        = "lessons"
	CollectionExams          = "exams"
	CollectionAssignments    = "assignments"
	CollectionTeachers       = "teachers"
	CollectionStudents       = "students"
	CollectionParents        = "parents"
	CollectionAnnouncements  = "announcements"
	CollectionEvents         = "events"
	CollectionTokenBlacklist = "tokenBlacklist"
)

// BloodTypes accepted on teacher and student profiles.
var BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}
