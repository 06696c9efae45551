package seeder

import "github.com/google/uuid"

// Seeded rows use name-derived ids so that reruns hit ON CONFLICT instead of duplicating.
var demoNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("talent-match/demo"))

// DemoRecruiterID owns every seeded job.
var DemoRecruiterID = demoID("recruiter")

func demoID(name string) uuid.UUID {
	return uuid.NewSHA1(demoNamespace, []byte(name))
}

func Defaults() []Seeder {
	return []Seeder{
		JobsSeeder{},
		CandidatesSeeder{},
		ApplicationsSeeder{},
	}
}
