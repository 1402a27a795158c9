package query

import "islandtracker/internal/types"

func (s *UnitTestSuite) TestEvalAny() {
	obj := map[string]any{
		"name":   "Tom",
		"island": map[string]any{"name": "Nook", "fruit": 3},
		"prices": []any{"90", "110", "132"},
		"status": nil,
	}

	v, err := EvalAny("name", obj)
	s.NoError(err)
	s.Equal("Tom", v.(string))

	v, err = EvalAny("island.name", obj)
	s.NoError(err)
	s.Equal("Nook", v.(string))

	v, err = EvalAny("island.fruit", obj)
	s.NoError(err)
	s.Equal(3, v.(int))

	v, err = EvalAny("prices[1]", obj)
	s.NoError(err)
	s.Equal("110", v.(string))

	v, err = EvalAny("status", obj)
	s.NoError(err)
	s.Nil(v)

	v, err = EvalAny("nonexistent", obj)
	s.NoError(err)
	s.Nil(v)

	v, err = EvalAny("contains(prices, '132')", obj)
	s.NoError(err)
	s.Equal(true, v.(bool))

	v, err = EvalAny("contains(prices, '1')", obj)
	s.NoError(err)
	s.Equal(false, v.(bool))

	_, err = EvalAny("prices[", obj)
	s.Error(err)
}

func (s *UnitTestSuite) TestGenericUsesJSONNames() {
	g, err := Generic([]types.PendingFriendRequest{{RequesterPublicKey: "k1", Name: "Ann", IslandName: "Nook"}})
	s.NoError(err)

	v, err := EvalAny("[0].requesterPublicKey", g)
	s.NoError(err)
	s.Equal("k1", v)
}
