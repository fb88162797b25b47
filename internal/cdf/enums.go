package cdf

// The closed enumerations of the schema family. The schema is an externally
// supplied contract; these sets mirror its simple-type definitions.

// ElectionTypes enumerates ElectionType values.
var ElectionTypes = newSet(
	"general",
	"partisan-primary-closed",
	"partisan-primary-open",
	"primary",
	"runoff",
	"special",
	"other",
)

// PartisanPrimaryTypes are the election types whose contests must link a
// political party.
var PartisanPrimaryTypes = newSet(
	"primary",
	"partisan-primary-open",
	"partisan-primary-closed",
)

// ElectionDateTypes enumerates ElectionDateType values on metadata feeds.
var ElectionDateTypes = newSet(
	"election-day",
	"registration-deadline",
	"registration-start",
	"early-voting-start",
	"early-voting-end",
	"other",
)

// ElectionDateStatuses enumerates the status of a scheduled election date.
var ElectionDateStatuses = newSet(
	"confirmed",
	"tentative",
	"postponed",
	"canceled",
)

// FeedTypes enumerates the kind of data a feed delivers.
var FeedTypes = newSet(
	"election-dates",
	"officeholder",
	"pre-election",
	"election-results",
)

// FeedLongevities enumerates how long a delivery feed stays live.
var FeedLongevities = newSet(
	"evergreen",
	"single-election",
)

// OfficeLevels enumerates Office Level values.
var OfficeLevels = newSet(
	"Administrative Area 1",
	"Administrative Area 2",
	"Country",
	"District",
	"International",
	"Municipality",
	"Neighbourhood",
	"Region",
	"Ward",
)

// Genders enumerates the accepted Person gender values.
var Genders = newSet(
	"male", "m",
	"female", "f",
	"nonbinary",
	"other",
	"unknown",
)

// OfficeRoles enumerates Office Role values.
var OfficeRoles = newSet(
	"attorney general",
	"auditor",
	"bailiff",
	"board of regents",
	"cabinet member",
	"chief of police",
	"circuit clerk",
	"circuit court",
	"city clerk",
	"city council",
	"civil court at law",
	"constable",
	"coroner",
	"county assessor",
	"county attorney",
	"county clerk",
	"county commissioner",
	"county council",
	"county court",
	"county recorder",
	"county surveyor",
	"court at law",
	"court at law clerk",
	"court of last resort",
	"criminal appeals court",
	"criminal court at law",
	"deputy head of government",
	"deputy state executive",
	"district attorney",
	"district clerk",
	"district court",
	"fire",
	"general purpose officer",
	"governors council",
	"head of government",
	"head of state",
	"health care",
	"intermediate appellate court",
	"jailer",
	"judge",
	"justice of the peace",
	"lower house",
	"mayor",
	"other",
	"parks",
	"president",
	"probate court at law",
	"prosecutor",
	"public administrator",
	"public defender",
	"referenda",
	"register deeds",
	"registrar of voters",
	"sanitation",
	"school board",
	"secretary agriculture",
	"secretary education",
	"secretary insurance",
	"secretary labor",
	"secretary land",
	"secretary state",
	"sheriff",
	"solicitor general",
	"special purpose officer",
	"state board education",
	"state executive",
	"state lower house",
	"state tribal relations",
	"state upper house",
	"subcounty executive",
	"superior clerk",
	"superior court",
	"tax court",
	"taxes",
	"treasurer",
	"upper house",
	"utilities",
	"vice president",
	"water",
	"workers compensation court",
)

// DistrictReportingUnitTypes are the ReportingUnit types expected to carry
// an OCD-ID external identifier.
var DistrictReportingUnitTypes = newSet(
	"borough", "city", "county", "municipality", "state", "town",
	"township", "village",
)

// Enumeration is an immutable closed value set.
type Enumeration map[string]struct{}

// NewEnumeration builds an Enumeration from its member values.
func NewEnumeration(values ...string) Enumeration {
	return newSet(values...)
}

func newSet(values ...string) Enumeration {
	s := make(Enumeration, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Contains reports membership of the exact value.
func (e Enumeration) Contains(value string) bool {
	_, ok := e[value]
	return ok
}
