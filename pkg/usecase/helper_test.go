package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/covidboard/pkg/domain/interfaces/mocks"
	"github.com/secmon-lab/covidboard/pkg/domain/model"
)

const testCSV = `UID,Admin2,Province_State,Country_Region,1/22/20,1/23/20,1/24/20,1/25/20
84006001,Alameda,California,US,10,20,30,40
84006019,Fresno,California,US,5,8,13,21
84001001,Autauga,Alabama,US,1,2,4,8
84001003,Baldwin,Alabama,US,0,3,6,9
`

const testSourceName = "https://example.com/confirmed.csv"

func newTable(t *testing.T) *model.RawTable {
	t.Helper()
	table, err := model.ParseRawTable(strings.NewReader(testCSV))
	gt.NoError(t, err).Required()
	return table
}

func newSource(t *testing.T) *mocks.SourceMock {
	return &mocks.SourceMock{
		FetchFunc: func(ctx context.Context) (*model.RawTable, error) {
			return newTable(t), nil
		},
		NameFunc: func() string {
			return testSourceName
		},
	}
}
