package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
)

type SignalTestSuite struct {
	suite.Suite
}

func TestSignalSuite(t *testing.T) {
	suite.Run(t, new(SignalTestSuite))
}

func (suite *SignalTestSuite) TestConstructors() {
	hold := Hold(ReasonLowVolume)
	suite.Equal(SignalActionHold, hold.Action)
	suite.Equal("LOW_VOLUME", hold.Reason)

	open := OpenLong(ReasonEntryConditionsMet)
	suite.Equal(SignalActionOpenLong, open.Action)
	suite.Equal("ENTRY_CONDITIONS_MET", open.Reason)
}

func (suite *SignalTestSuite) TestActionSerializesAsName() {
	data, err := json.Marshal(OpenLong(ReasonEntryConditionsMet))
	suite.Require().NoError(err)
	suite.JSONEq(`{"action":"OPEN_LONG","reason":"ENTRY_CONDITIONS_MET"}`, string(data))
}
