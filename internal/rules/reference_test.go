package rules

import (
	"strings"
	"testing"

	"github.com/civictools/cdflint/internal/diag"
	"github.com/civictools/cdflint/internal/schema"
)

func districtFeed(ocdID string) string {
	ext := ""
	if ocdID != "" {
		ext = `<ExternalIdentifiers><ExternalIdentifier>
      <Type>ocd-id</Type><Value>` + ocdID + `</Value>
    </ExternalIdentifier></ExternalIdentifiers>`
	}
	return `<ElectionReport xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <Election objectId="el1">
    <ContestCollection>
      <Contest objectId="cc1" xsi:type="CandidateContest">
        <ElectoralDistrictId>ru1</ElectoralDistrictId>
      </Contest>
    </ContestCollection>
  </Election>
  <GpUnitCollection>
    <GpUnit objectId="ru1" xsi:type="ReportingUnit">
      <Type>county</Type>` + ext + `
    </GpUnit>
  </GpUnitCollection>
</ElectionReport>`
}

func TestElectoralDistrictOcdId(t *testing.T) {
	tests := []struct {
		name     string
		ocdID    string
		findings int
	}{
		{"valid ocd-id", "ocd-division/country:us/state:va/county:fairfax", 0},
		{"malformed ocd-id", "ocd-division/country:us/FAIRFAX", 1},
		{"no external identifier", "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := testContext(t, districtFeed(tt.ocdID))
			found := (&ElectoralDistrictOcdIdRule{}).Check(rc)
			if len(found) != tt.findings {
				t.Errorf("Check() = %v, want %d findings", found, tt.findings)
			}
		})
	}
}

func TestElectoralDistrictOcdIdDanglingReference(t *testing.T) {
	rc := testContext(t, `<ElectionReport xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <Election objectId="el1">
    <ContestCollection>
      <Contest objectId="cc1" xsi:type="CandidateContest">
        <ElectoralDistrictId>ru404</ElectoralDistrictId>
      </Contest>
    </ContestCollection>
  </Election>
</ElectionReport>`)

	found := (&ElectoralDistrictOcdIdRule{}).Check(rc)
	if len(found) != 1 {
		t.Fatalf("Check() = %v, want one finding", found)
	}
	if !strings.Contains(found[0].Message, "cc1") {
		t.Errorf("message %q does not name the contest", found[0].Message)
	}
}

func TestElectoralDistrictOcdIdTypeCase(t *testing.T) {
	rc := testContext(t, `<ElectionReport xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <Election objectId="el1">
    <ContestCollection>
      <Contest objectId="cc1" xsi:type="CandidateContest">
        <ElectoralDistrictId>ru1</ElectoralDistrictId>
      </Contest>
    </ContestCollection>
  </Election>
  <GpUnitCollection>
    <GpUnit objectId="ru1" xsi:type="ReportingUnit">
      <ExternalIdentifiers><ExternalIdentifier>
        <Type>OCD-ID</Type><Value>ocd-division/country:us/state:va</Value>
      </ExternalIdentifier></ExternalIdentifiers>
    </GpUnit>
  </GpUnitCollection>
</ElectionReport>`)

	found := (&ElectoralDistrictOcdIdRule{}).Check(rc)
	var sawCase bool
	for _, d := range found {
		if strings.Contains(d.Message, "case is incorrect") {
			sawCase = true
		}
	}
	if !sawCase {
		t.Errorf("no case finding in %v", found)
	}
}

func TestGpUnitOcdId(t *testing.T) {
	t.Run("district with bad ocd-id", func(t *testing.T) {
		rc := testContext(t, districtFeed("not-an-ocd-id"))
		found := (&GpUnitOcdIdRule{}).Check(rc)
		if len(found) != 1 {
			t.Fatalf("Check() = %v, want one finding", found)
		}
		if found[0].Severity != diag.SeverityWarning {
			t.Errorf("severity = %v, want Warning", found[0].Severity)
		}
	})

	t.Run("non-district unit is out of scope", func(t *testing.T) {
		rc := testContext(t, `<ElectionReport xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <GpUnitCollection>
    <GpUnit objectId="ru1" xsi:type="ReportingUnit">
      <Type>precinct</Type>
      <ExternalIdentifiers><ExternalIdentifier>
        <Type>ocd-id</Type><Value>garbage</Value>
      </ExternalIdentifier></ExternalIdentifiers>
    </GpUnit>
  </GpUnitCollection>
</ElectionReport>`)
		if found := (&GpUnitOcdIdRule{}).Check(rc); len(found) != 0 {
			t.Errorf("Check() = %v, want no findings for a precinct", found)
		}
	})
}

const miniXSD = `<?xml version="1.0" encoding="UTF-8"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:element name="ElectionReport">
    <xs:complexType><xs:sequence>
      <xs:element name="Election" minOccurs="0"/>
      <xs:element name="SequenceOrder" type="xs:integer" minOccurs="0"/>
      <xs:element name="PersonId" type="xs:IDREF" minOccurs="0"/>
    </xs:sequence></xs:complexType>
  </xs:element>
</xs:schema>`

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.ParseBytes([]byte(miniXSD))
	if err != nil {
		t.Fatalf("parsing fixture schema: %v", err)
	}
	return s
}

func TestOptionalAndEmpty(t *testing.T) {
	rc := testContext(t, `<ElectionReport>
  <Election objectId="el1"><SequenceOrder></SequenceOrder></Election>
</ElectionReport>`)
	rc.Schema = testSchema(t)

	found := (&OptionalAndEmptyRule{}).Check(rc)
	if len(found) != 1 {
		t.Fatalf("Check() = %v, want one finding", found)
	}
	if !strings.Contains(found[0].Message, "SequenceOrder") {
		t.Errorf("message %q does not name the element", found[0].Message)
	}
}

func TestOptionalAndEmptyWithoutSchema(t *testing.T) {
	rc := testContext(t, `<ElectionReport><SequenceOrder></SequenceOrder></ElectionReport>`)
	if found := (&OptionalAndEmptyRule{}).Check(rc); len(found) != 0 {
		t.Errorf("Check() = %v, want nothing without a schema", found)
	}
}

func TestValidIDREFUsesSchemaFields(t *testing.T) {
	rc := testContext(t, `<ElectionReport>
  <Election objectId="el1"><PersonId>per404</PersonId></Election>
</ElectionReport>`)
	rc.Schema = testSchema(t)

	found := (&ValidIDREFRule{}).Check(rc)
	if len(found) != 1 {
		t.Fatalf("Check() = %v, want one finding", found)
	}
	if found[0].Message != "unresolved reference: per404" {
		t.Errorf("message = %q", found[0].Message)
	}
}

func TestSchemaRule(t *testing.T) {
	rc := testContext(t, `<ElectionReport><Sideband/></ElectionReport>`)
	s := testSchema(t)
	rc.Schema = s
	rc.SchemaDiags = s.Validate(rc.Doc)

	found := (&SchemaRule{}).Check(rc)
	if len(found) != 1 {
		t.Fatalf("Check() = %v, want one finding for the undeclared element", found)
	}
	if found[0].Rule != schema.RuleName {
		t.Errorf("rule = %q, want %q", found[0].Rule, schema.RuleName)
	}
}

func TestDuplicateIDRule(t *testing.T) {
	rc := testContext(t, `<ElectionReport>
  <PersonCollection>
    <Person objectId="per1"/><Person objectId="per1"/>
  </PersonCollection>
</ElectionReport>`)

	found := (&DuplicateIDRule{}).Check(rc)
	if len(found) != 1 {
		t.Fatalf("Check() = %v, want one finding", found)
	}
	if found[0].Rule != "DuplicateID" {
		t.Errorf("rule = %q, want DuplicateID", found[0].Rule)
	}
}
