package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Record is the fixed-shape row every codec round-trips
type Record struct {
	FirstName string `json:"firstName" msgpack:"firstName"`
	LastName  string `json:"lastName" msgpack:"lastName"`
	TeamID    int    `json:"teamId" msgpack:"teamId"`
}

// Column names in tabular order
var Columns = []string{"firstName", "lastName", "teamId"}

// NewRecord creates a record
func NewRecord(firstName, lastName string, teamID int) Record {
	return Record{
		FirstName: firstName,
		LastName:  lastName,
		TeamID:    teamID,
	}
}

// Fields returns the record as a positional row matching Columns
func (r Record) Fields() []string {
	return []string{r.FirstName, r.LastName, strconv.Itoa(r.TeamID)}
}

func (r Record) String() string {
	return fmt.Sprintf("{firstName:%q lastName:%q teamId:%d}", r.FirstName, r.LastName, r.TeamID)
}

// errNilRecord is returned when an element is null instead of a record
var errNilRecord = errors.New("record is null")

// recordField tracks which keys a decoded element carried
type recordField uint8

const (
	fieldFirstName recordField = 1 << iota
	fieldLastName
	fieldTeamID

	allFields = fieldFirstName | fieldLastName | fieldTeamID
)

// fieldFor maps a wire name to its presence bit
func fieldFor(key string) (recordField, error) {
	switch key {
	case "firstName":
		return fieldFirstName, nil
	case "lastName":
		return fieldLastName, nil
	case "teamId":
		return fieldTeamID, nil
	}
	return 0, fmt.Errorf("unknown field %q", key)
}

// checkFields reports the keys missing from seen
func checkFields(seen recordField) error {
	if seen == allFields {
		return nil
	}

	var missing []string
	for i, name := range Columns {
		if seen&(1<<i) == 0 {
			missing = append(missing, name)
		}
	}
	return fmt.Errorf("record is missing %s", strings.Join(missing, ", "))
}
