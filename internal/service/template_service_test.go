package service

import (
	"context"
	"testing"

	"voltshop/pkg/interfaces"
	"voltshop/pkg/specs"
	"voltshop/pkg/store/mysql/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTemplate_Success(t *testing.T) {
	categoryRepo := newFakeCategoryRepo(cpuCategory())
	templateRepo := newFakeTemplateRepo()
	svc := NewTemplateService(categoryRepo, templateRepo, serviceRegistry())

	result, err := svc.CreateTemplate(context.Background(), &interfaces.CreateTemplateRequest{
		CategoryID:         1,
		Name:               "socket",
		DisplayName:        "Socket",
		DataType:           "socket",
		IsRequired:         true,
		IsCompatibilityKey: true,
		EnumSource:         "socket_type",
	})

	require.NoError(t, err)
	assert.Equal(t, "socket", result.Template.Name)
	assert.NotZero(t, result.Template.ID)
	assert.Len(t, templateRepo.templates, 1)
}

func TestCreateTemplate_UnknownCategory(t *testing.T) {
	svc := NewTemplateService(newFakeCategoryRepo(), newFakeTemplateRepo(), serviceRegistry())

	_, err := svc.CreateTemplate(context.Background(), &interfaces.CreateTemplateRequest{
		CategoryID:  99,
		Name:        "socket",
		DisplayName: "Socket",
		DataType:    "socket",
		EnumSource:  "socket_type",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateTemplate_DuplicateName(t *testing.T) {
	categoryRepo := newFakeCategoryRepo(cpuCategory())
	templateRepo := newFakeTemplateRepo(&model.SpecTemplate{ID: 1, CategoryID: 1, Name: "socket"})
	svc := NewTemplateService(categoryRepo, templateRepo, serviceRegistry())

	_, err := svc.CreateTemplate(context.Background(), &interfaces.CreateTemplateRequest{
		CategoryID:  1,
		Name:        "socket",
		DisplayName: "Socket",
		DataType:    "socket",
		EnumSource:  "socket_type",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCreateTemplate_BadDefinitionBlocked(t *testing.T) {
	categoryRepo := newFakeCategoryRepo(cpuCategory())
	templateRepo := newFakeTemplateRepo()
	svc := NewTemplateService(categoryRepo, templateRepo, serviceRegistry())

	// Closed enum type without a registry binding is rejected
	_, err := svc.CreateTemplate(context.Background(), &interfaces.CreateTemplateRequest{
		CategoryID:  1,
		Name:        "socket",
		DisplayName: "Socket",
		DataType:    "socket",
	})

	require.Error(t, err)
	var defErr *DefinitionError
	require.ErrorAs(t, err, &defErr)
	assert.NotEmpty(t, defErr.Issues)
	assert.Empty(t, templateRepo.templates)
}

func TestGetTemplatesForCategory(t *testing.T) {
	categoryRepo := newFakeCategoryRepo(cpuCategory())
	templateRepo := newFakeTemplateRepo(cpuTemplates()...)
	svc := NewTemplateService(categoryRepo, templateRepo, serviceRegistry())

	templates, err := svc.GetTemplatesForCategory(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, templates, 3)
	assert.Equal(t, "brand", templates[0].Name)

	// Unknown category is an error, not an empty list
	_, err = svc.GetTemplatesForCategory(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetTemplatesForCategory_EmptyCategory(t *testing.T) {
	categoryRepo := newFakeCategoryRepo(&model.Category{ID: 7, Name: "Cables"})
	svc := NewTemplateService(categoryRepo, newFakeTemplateRepo(), serviceRegistry())

	templates, err := svc.GetTemplatesForCategory(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, templates)
}

func TestUpdateTemplate_RechecksDefinition(t *testing.T) {
	categoryRepo := newFakeCategoryRepo(cpuCategory())
	templateRepo := newFakeTemplateRepo(&model.SpecTemplate{
		ID: 1, CategoryID: 1, Name: "tdp", DisplayName: "TDP", DataType: "power_consumption",
	})
	svc := NewTemplateService(categoryRepo, templateRepo, serviceRegistry())

	min, max := 500.0, 10.0
	_, err := svc.UpdateTemplate(context.Background(), 1, &interfaces.UpdateTemplateRequest{
		ValidationRules: &specs.ValidationRules{Min: &min, Max: &max},
	})

	require.Error(t, err)
	var defErr *DefinitionError
	require.ErrorAs(t, err, &defErr)

	newName := "Thermal Design Power"
	result, err := svc.UpdateTemplate(context.Background(), 1, &interfaces.UpdateTemplateRequest{
		DisplayName: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, newName, result.Template.DisplayName)
}
