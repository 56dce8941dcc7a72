package demo

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/morph"
	"github.com/aretw0/morph/pkg/value"
)

func TestRun(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Run(context.Background(), &buf, morph.New()))

	out := buf.String()
	for _, want := range []string{
		`User: {"username":"Alice","age":30}`,
		`Rejected user: field "age": age must be positive`,
		"User #2: Eve, age 22",
		"Decoded user: Frank, age 41",
		`Rejected document: field "age": required`,
		"  add: 30\n",
		"  multiply: 24\n",
		`  textData: "THIS MIGHT BE AN ERROR MESSAGE"`,
		`  listData: [15 "olleh" 3.14 -6 30]`,
		"  anotherList: [2 4 6 8 10 12 14]",
		`  nestedDict: {"ignored": 3.1415, "innerInt": 15, "innerText": "Success case"}`,
		"  unhandledType: map[1:{} 2:{} 3:{}]",
	} {
		assert.Contains(t, out, want)
	}
}

func TestSampleConfig_Fresh(t *testing.T) {
	a, b := SampleConfig(), SampleConfig()
	assert.True(t, a.Equal(b))
	assert.Equal(t, value.KindOther, a["unhandledType"].Kind())
}
