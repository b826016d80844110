package report

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/dyngridgo/internal/testutil"
)

func TestReporter(t *testing.T) {
	ctx, logs := testutil.NewContext(t)
	r := New()

	r.Warn(ctx, Warning{Kind: UnknownEquipment, ModelType: "dynamic_model", ModelID: "GEN9", Field: "static_id", Message: `equipment "G9" not found`})
	r.Warn(ctx, Warning{Kind: MissingField, ModelType: "event", ModelID: "EV1", Message: "no target"})

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, "GEN9", r.Warnings()[0].ModelID)
	assert.Equal(t, `dynamic_model "GEN9": equipment "G9" not found (field "static_id")`, r.Warnings()[0].String())
	assert.Equal(t, `event "EV1": no target`, r.Warnings()[1].String())
	assert.Contains(t, logs.String(), "model_id=GEN9")
}

func TestReporter_Nil(t *testing.T) {
	ctx, logs := testutil.NewContext(t)
	var r *Reporter
	r.Warn(ctx, Warning{ModelID: "X"})
	assert.Equal(t, 0, r.Len())
	assert.Nil(t, r.Warnings())
	assert.Contains(t, logs.String(), "Declaration skipped.")
}

func TestReporter_Diagnostics(t *testing.T) {
	ctx, logs := testutil.NewContext(t)
	r := New()

	subject := &hcl.Range{Filename: "models.hcl", Start: hcl.Pos{Line: 7, Column: 3}, End: hcl.Pos{Line: 7, Column: 20}}
	r.Warn(ctx, Warning{Kind: UnknownLibrary, ModelType: "NoSuchLib", ModelID: "X", Message: "library is not registered", Subject: subject})
	r.Warn(ctx, Warning{Kind: MissingCapability, ModelType: "generator", ModelID: "GEN1", Message: "no numcc"})

	diags := r.Diagnostics()
	require.Len(t, diags, 2)
	assert.False(t, diags.HasErrors())

	assert.Equal(t, hcl.DiagWarning, diags[0].Severity)
	assert.Equal(t, "Unknown library", diags[0].Summary)
	assert.Equal(t, subject, diags[0].Subject)
	assert.Contains(t, diags[0].Detail, `NoSuchLib "X": library is not registered`)
	assert.Nil(t, diags[1].Subject)

	assert.Equal(t, "models.hcl:7", r.Warnings()[0].Location())
	assert.Equal(t, `models.hcl:7: NoSuchLib "X": library is not registered`, r.Warnings()[0].String())
	assert.Contains(t, logs.String(), "location=models.hcl:7")
}
