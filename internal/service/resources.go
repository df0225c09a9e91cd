package service

import (
	"github.com/alimovshaxzod89/SMS/internal/models"
	"github.com/alimovshaxzod89/SMS/internal/query"
)

func primary(field, collection string, fields ...string) query.Relation {
	return query.Relation{Field: field, Kind: query.PrimaryRef, Collection: collection, Fields: fields}
}

func external(field, collection string, fields ...string) query.Relation {
	return query.Relation{Field: field, Kind: query.ExternalRef, Collection: collection, Fields: fields}
}

func many(field, collection string, fields ...string) query.Relation {
	return query.Relation{Field: field, Kind: query.PrimaryRef, Collection: collection, Fields: fields, Many: true}
}

// lessonRelation joins a lesson with its subject, class and teacher.
func lessonRelation(teacherFields ...string) query.Relation {
	rel := primary("lessonId", models.CollectionLessons, "name")
	rel.Nested = []query.Relation{
		primary("subjectId", models.CollectionSubjects, "name"),
		primary("classId", models.CollectionClasses, "name"),
		external("teacherId", models.CollectionTeachers, teacherFields...),
	}
	return rel
}

// throughLessons restricts lesson-bound collections by the class and
// teacher of their lesson, intersected with an explicit lessonId.
var throughLessons = &query.Via{
	Field:      "lessonId",
	Collection: models.CollectionLessons,
	Params: []query.Param{
		{Name: "classId", Field: "classId", Kind: query.PrimaryRef, Noun: "class"},
		{Name: "teacherId", Field: "teacherId", Kind: query.ExternalRef, Noun: "teacher"},
	},
	Explicit: &query.Param{Name: "lessonId", Field: "lessonId", Kind: query.PrimaryRef, Noun: "lesson"},
}

func profileDuplicates(noun string) map[string]string {
	return map[string]string{
		query.FieldExternalID: noun + " ID already exists",
		"username":            "Username already exists",
		"email":               "Email already exists",
	}
}

var profileSearch = &query.SearchSpec{Fields: []string{"name", "surname", "username"}}

var (
	gradeResource = resource{
		collection:   models.CollectionGrades,
		noun:         "grade",
		sort:         []query.SortField{query.Asc("level")},
		defaultLimit: 100,
		duplicates:   map[string]string{"level": "Grade level already exists"},
	}

	classResource = resource{
		collection: models.CollectionClasses,
		noun:       "class",
		spec: query.FilterSpec{
			Params: []query.Param{
				{Name: "gradeId", Field: "gradeId", Kind: query.PrimaryRef, Noun: "grade"},
				{Name: "supervisorId", Field: "supervisorId", Kind: query.ExternalRef, Noun: "supervisor"},
			},
			Search: &query.SearchSpec{Fields: []string{"name"}},
		},
		sort: []query.SortField{query.Desc(query.FieldCreatedAt)},
		listRelations: []query.Relation{
			primary("gradeId", models.CollectionGrades, "level"),
			external("supervisorId", models.CollectionTeachers, "name", "surname"),
		},
		detailRelations: []query.Relation{
			primary("gradeId", models.CollectionGrades, "level"),
			external("supervisorId", models.CollectionTeachers, "name", "surname", "email", "phone"),
			many("students", models.CollectionStudents, "id", "name", "surname", "email"),
		},
		duplicates: map[string]string{"name": "Class name already exists"},
	}

	subjectResource = resource{
		collection: models.CollectionSubjects,
		noun:       "subject",
		spec: query.FilterSpec{
			Params: []query.Param{
				{Name: "teacherId", Field: "teachers", Kind: query.PrimaryRef, Noun: "teacher", Array: true},
			},
			Search: &query.SearchSpec{Fields: []string{"name"}},
		},
		sort: []query.SortField{query.Asc("name")},
		listRelations: []query.Relation{
			many("teachers", models.CollectionTeachers, "name", "surname", "email"),
		},
		detailRelations: []query.Relation{
			many("teachers", models.CollectionTeachers, "id", "name", "surname", "email", "phone"),
		},
		duplicates: map[string]string{"name": "Subject name already exists"},
	}

	lessonResource = resource{
		collection: models.CollectionLessons,
		noun:       "lesson",
		spec: query.FilterSpec{
			Params: []query.Param{
				{Name: "classId", Field: "classId", Kind: query.PrimaryRef, Noun: "class"},
				{Name: "subjectId", Field: "subjectId", Kind: query.PrimaryRef, Noun: "subject"},
				{Name: "teacherId", Field: "teacherId", Kind: query.ExternalRef, Noun: "teacher"},
			},
			Search: &query.SearchSpec{Fields: []string{"name"}},
		},
		sort: []query.SortField{query.Desc(query.FieldCreatedAt)},
		listRelations: []query.Relation{
			primary("subjectId", models.CollectionSubjects, "name"),
			primary("classId", models.CollectionClasses, "name"),
			external("teacherId", models.CollectionTeachers, "name", "surname"),
		},
		detailRelations: []query.Relation{
			primary("subjectId", models.CollectionSubjects, "name"),
			primary("classId", models.CollectionClasses, "name"),
			external("teacherId", models.CollectionTeachers, "name", "surname", "email", "phone"),
		},
	}

	examResource = resource{
		collection: models.CollectionExams,
		noun:       "exam",
		spec: query.FilterSpec{
			Via:    throughLessons,
			Search: &query.SearchSpec{Fields: []string{"title"}},
		},
		sort:            []query.SortField{query.Desc("startTime")},
		listRelations:   []query.Relation{lessonRelation("name", "surname")},
		detailRelations: []query.Relation{lessonRelation("name", "surname", "email", "phone")},
	}

	assignmentResource = resource{
		collection: models.CollectionAssignments,
		noun:       "assignment",
		spec: query.FilterSpec{
			Via: throughLessons,
			Search: &query.SearchSpec{
				Fields: []string{"title"},
				Indirect: []query.IndirectMatch{{
					Path: []query.Hop{
						{Field: "lessonId", Collection: models.CollectionLessons},
						{Field: "subjectId", Collection: models.CollectionSubjects},
					},
					Field: "name",
				}},
			},
		},
		sort:            []query.SortField{query.Desc("dueDate")},
		listRelations:   []query.Relation{lessonRelation("name", "surname")},
		detailRelations: []query.Relation{lessonRelation("name", "surname", "email", "phone")},
	}

	teacherResource = resource{
		collection: models.CollectionTeachers,
		noun:       "teacher",
		spec: query.FilterSpec{
			Params: []query.Param{
				{Name: "subjectId", Field: "subjects", Kind: query.PrimaryRef, Noun: "subject", Array: true},
			},
			Search: profileSearch,
		},
		sort:            []query.SortField{query.Desc(query.FieldCreatedAt)},
		listRelations:   []query.Relation{many("subjects", models.CollectionSubjects, "name")},
		detailRelations: []query.Relation{many("subjects", models.CollectionSubjects, "name")},
		duplicates:      profileDuplicates("Teacher"),
	}

	studentResource = resource{
		collection: models.CollectionStudents,
		noun:       "student",
		spec: query.FilterSpec{
			Params: []query.Param{
				{Name: "classId", Field: "classId", Kind: query.PrimaryRef, Noun: "class"},
				{Name: "gradeId", Field: "gradeId", Kind: query.PrimaryRef, Noun: "grade"},
				{Name: "parentId", Field: "parentId", Kind: query.ExternalRef, Noun: "parent"},
			},
			Search: profileSearch,
		},
		sort: []query.SortField{query.Desc(query.FieldCreatedAt)},
		listRelations: []query.Relation{
			primary("classId", models.CollectionClasses, "name"),
			primary("gradeId", models.CollectionGrades, "level"),
			external("parentId", models.CollectionParents, "name", "surname"),
		},
		detailRelations: []query.Relation{
			primary("classId", models.CollectionClasses, "name"),
			primary("gradeId", models.CollectionGrades, "level"),
			external("parentId", models.CollectionParents, "name", "surname", "email", "phone"),
		},
		duplicates: profileDuplicates("Student"),
	}

	parentResource = resource{
		collection: models.CollectionParents,
		noun:       "parent",
		spec:       query.FilterSpec{Search: profileSearch},
		sort:       []query.SortField{query.Desc(query.FieldCreatedAt)},
		duplicates: profileDuplicates("Parent"),
	}

	announcementResource = resource{
		collection: models.CollectionAnnouncements,
		noun:       "announcement",
		spec: query.FilterSpec{
			Params: []query.Param{
				{Name: "classId", Field: "classId", Kind: query.PrimaryRef, Noun: "class"},
			},
			Search: &query.SearchSpec{Fields: []string{"title"}},
		},
		sort:            []query.SortField{query.Desc("date")},
		listRelations:   []query.Relation{primary("classId", models.CollectionClasses, "name")},
		detailRelations: []query.Relation{primary("classId", models.CollectionClasses, "name")},
	}

	eventResource = resource{
		collection: models.CollectionEvents,
		noun:       "event",
		spec: query.FilterSpec{
			Params: []query.Param{
				{Name: "classId", Field: "classId", Kind: query.PrimaryRef, Noun: "class"},
			},
			Search: &query.SearchSpec{Fields: []string{"title"}},
		},
		sort:            []query.SortField{query.Asc("startTime")},
		listRelations:   []query.Relation{primary("classId", models.CollectionClasses, "name")},
		detailRelations: []query.Relation{primary("classId", models.CollectionClasses, "name")},
	}
)
