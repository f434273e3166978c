package dist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	. "github.com/zigcc/zbuild/internal/dist"
)

func TestRecord(t *testing.T) {
	var record Record
	record.Add("demo.so", []byte("hello"))

	expect := "demo.so,sha256=LPJNul-wow4m6DsqxbninhsWHlwfp0JecwQzYpOLmCQ,5\n" +
		"demo-0.1.0.dist-info/RECORD,,\n"

	assert.Equal(t, expect, record.Render("demo-0.1.0.dist-info/RECORD"))
}

func TestRecordEmpty(t *testing.T) {
	var record Record
	assert.Equal(t, "RECORD,,\n", record.Render("RECORD"))
}
