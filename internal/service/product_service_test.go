package service

import (
	"context"
	"errors"
	"testing"

	"voltshop/pkg/constants"
	"voltshop/pkg/enums"
	"voltshop/pkg/interfaces"
	"voltshop/pkg/specs"
	"voltshop/pkg/store/mysql/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serviceRegistry() *enums.Registry {
	return enums.NewRegistry(map[string][]string{
		enums.SourceSocketType: {"AM4", "AM5", "LGA1700"},
		enums.SourceMemoryType: {"DDR4", "DDR5"},
	})
}

func cpuCategory() *model.Category {
	return &model.Category{ID: 1, Name: "CPUs", Slug: "cpus", IsPCComponent: true, PCComponentType: "cpu"}
}

func cpuTemplates() []*model.SpecTemplate {
	return []*model.SpecTemplate{
		{ID: 1, CategoryID: 1, Name: "brand", DisplayName: "Brand", DataType: "text", IsRequired: true, DisplayOrder: 1},
		{ID: 2, CategoryID: 1, Name: "socket", DisplayName: "Socket", DataType: "socket", EnumSource: "socket_type", IsRequired: true, IsCompatibilityKey: true, DisplayOrder: 2},
		{ID: 3, CategoryID: 1, Name: "tdp", DisplayName: "TDP", DataType: "power_consumption", DisplayOrder: 3},
	}
}

func newProductService(productRepo *fakeProductRepo, specRepo *fakeSpecRepo) *ProductService {
	return NewProductService(
		newFakeCategoryRepo(cpuCategory()),
		newFakeTemplateRepo(cpuTemplates()...),
		productRepo,
		specRepo,
		newFakeRuleRepo(),
		serviceRegistry(),
	)
}

func TestCreateProduct_Success(t *testing.T) {
	productRepo := newFakeProductRepo()
	specRepo := newFakeSpecRepo()
	svc := newProductService(productRepo, specRepo)

	result, err := svc.CreateProductWithSpecifications(context.Background(), &interfaces.CreateProductRequest{
		Name:       "Ryzen 7 5800X",
		CategoryID: 1,
		Price:      299,
		Specifications: map[string]interface{}{
			"brand":  "AMD",
			"socket": "am4",
			"tdp":    105,
		},
	})

	require.NoError(t, err)
	require.True(t, result.Success)
	require.NotNil(t, result.Product)
	assert.Empty(t, result.Errors)
	assert.Len(t, result.Product.Specifications, 3)
	assert.Len(t, specRepo.rows, 3)

	// Enum input is canonicalized before it is stored
	var socket *model.ProductSpec
	for _, row := range specRepo.rows {
		if row.TemplateID == 2 {
			socket = row
		}
	}
	require.NotNil(t, socket)
	require.NotNil(t, socket.ValueEnum)
	assert.Equal(t, "AM4", *socket.ValueEnum)
}

func TestCreateProduct_MissingRequiredPersistsNothing(t *testing.T) {
	productRepo := newFakeProductRepo()
	specRepo := newFakeSpecRepo()
	svc := newProductService(productRepo, specRepo)

	result, err := svc.CreateProductWithSpecifications(context.Background(), &interfaces.CreateProductRequest{
		Name:       "Mystery CPU",
		CategoryID: 1,
		Specifications: map[string]interface{}{
			"socket": "AM4",
		},
	})

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Nil(t, result.Product)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, constants.ErrCodeMissingField, result.Errors[0].Code)
	assert.Equal(t, "brand", result.Errors[0].Field)

	assert.Empty(t, productRepo.products)
	assert.Empty(t, specRepo.rows)
}

func TestCreateProduct_CollectsAllErrors(t *testing.T) {
	svc := newProductService(newFakeProductRepo(), newFakeSpecRepo())

	result, err := svc.CreateProductWithSpecifications(context.Background(), &interfaces.CreateProductRequest{
		Name:       "Broken CPU",
		CategoryID: 1,
		Specifications: map[string]interface{}{
			"socket":  "AM9",
			"tdp":     "not a number",
			"unknown": "value",
		},
	})

	require.NoError(t, err)
	assert.False(t, result.Success)
	// missing brand, bad socket, bad tdp and the unknown key all reported
	assert.Len(t, result.Errors, 4)
}

func TestCreateProduct_RollsBackOnSpecWriteFailure(t *testing.T) {
	productRepo := newFakeProductRepo()
	specRepo := newFakeSpecRepo()
	specRepo.createBatchErr = errors.New("mysql has gone away")
	svc := newProductService(productRepo, specRepo)

	_, err := svc.CreateProductWithSpecifications(context.Background(), &interfaces.CreateProductRequest{
		Name:       "Ryzen 5 7600",
		CategoryID: 1,
		Specifications: map[string]interface{}{
			"brand":  "AMD",
			"socket": "AM5",
		},
	})

	require.Error(t, err)
	assert.Len(t, productRepo.hardDeleted, 1)
	assert.Empty(t, productRepo.products)
}

func TestCreateProduct_CrossFieldRuleReplacesFieldErrors(t *testing.T) {
	categoryRepo := newFakeCategoryRepo(cpuCategory())
	templateRepo := newFakeTemplateRepo(
		&model.SpecTemplate{ID: 1, CategoryID: 1, Name: "base_clock", DisplayName: "Base Clock", DataType: "frequency", IsCompatibilityKey: true, DisplayOrder: 1},
		&model.SpecTemplate{ID: 2, CategoryID: 1, Name: "boost_clock", DisplayName: "Boost Clock", DataType: "frequency", IsCompatibilityKey: true, DisplayOrder: 2},
	)
	lower, upper := 1.0, 2.0
	ruleRepo := newFakeRuleRepo(&model.CompatibilityRule{
		ID:                  1,
		PrimaryCategoryID:   1,
		SecondaryCategoryID: 1,
		PrimaryTemplateID:   2,
		SecondaryTemplateID: 1,
		RuleType:            constants.RuleTypeRange,
		Params:              model.JSONMap{"lower_factor": lower, "upper_factor": upper},
		Severity:            constants.SeverityError,
		IsActive:            true,
	})
	svc := NewProductService(categoryRepo, templateRepo, newFakeProductRepo(), newFakeSpecRepo(), ruleRepo, serviceRegistry())

	// Boost clock is far above twice the base clock, violating the
	// same-category range rule
	result, err := svc.CreateProductWithSpecifications(context.Background(), &interfaces.CreateProductRequest{
		Name:       "Overclocked",
		CategoryID: 1,
		Specifications: map[string]interface{}{
			"base_clock":  1000,
			"boost_clock": 9000,
		},
	})

	require.NoError(t, err)
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, constants.ErrCodeRuleViolation, result.Errors[0].Code)
	assert.Equal(t, "boost_clock", result.Errors[0].Field)
}

func TestCreateProduct_CrossFieldRuleFiresRegardlessOfDisplayOrder(t *testing.T) {
	// The constrained field comes first in display order and references a
	// sibling validated after it; the rule must still fire
	categoryRepo := newFakeCategoryRepo(cpuCategory())
	templateRepo := newFakeTemplateRepo(
		&model.SpecTemplate{ID: 1, CategoryID: 1, Name: "base_clock", DisplayName: "Base Clock", DataType: "frequency", IsCompatibilityKey: true, DisplayOrder: 1},
		&model.SpecTemplate{ID: 2, CategoryID: 1, Name: "boost_clock", DisplayName: "Boost Clock", DataType: "frequency", IsCompatibilityKey: true, DisplayOrder: 2},
	)
	lower, upper := 1.0, 2.0
	ruleRepo := newFakeRuleRepo(&model.CompatibilityRule{
		ID:                  1,
		PrimaryCategoryID:   1,
		SecondaryCategoryID: 1,
		PrimaryTemplateID:   1,
		SecondaryTemplateID: 2,
		RuleType:            constants.RuleTypeRange,
		Params:              model.JSONMap{"lower_factor": lower, "upper_factor": upper},
		Severity:            constants.SeverityError,
		IsActive:            true,
	})
	productRepo := newFakeProductRepo()
	specRepo := newFakeSpecRepo()
	svc := NewProductService(categoryRepo, templateRepo, productRepo, specRepo, ruleRepo, serviceRegistry())

	// Base clock 1000 falls below the [9000, 18000] window the boost clock
	// imposes on it
	result, err := svc.CreateProductWithSpecifications(context.Background(), &interfaces.CreateProductRequest{
		Name:       "Underclocked",
		CategoryID: 1,
		Specifications: map[string]interface{}{
			"base_clock":  1000,
			"boost_clock": 9000,
		},
	})

	require.NoError(t, err)
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, constants.ErrCodeRuleViolation, result.Errors[0].Code)
	assert.Equal(t, "base_clock", result.Errors[0].Field)

	assert.Empty(t, productRepo.products)
	assert.Empty(t, specRepo.rows)
}

func TestBulkApply_PartialFailureContinues(t *testing.T) {
	products := []*model.Product{
		{ID: "p1", Name: "CPU 1", CategoryID: 1, Status: "active"},
		{ID: "p2", Name: "CPU 2", CategoryID: 1, Status: "active"},
		{ID: "p3", Name: "Case 1", CategoryID: 9, Status: "active"}, // wrong category
		{ID: "p4", Name: "CPU 3", CategoryID: 1, Status: "active"},
		{ID: "p5", Name: "CPU 4", CategoryID: 1, Status: "active"},
	}
	productRepo := newFakeProductRepo(products...)
	specRepo := newFakeSpecRepo()
	svc := newProductService(productRepo, specRepo)

	result, err := svc.BulkApplySpecification(context.Background(), &interfaces.BulkApplyRequest{
		TemplateID: 3,
		Value:      95,
		ProductIDs: []string{"p1", "p2", "p3", "p4", "p5"},
	})

	require.NoError(t, err)
	assert.Equal(t, 4, result.SuccessCount)
	assert.Equal(t, 1, result.ErrorCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "p3", result.Errors[0].ProductID)
	assert.Len(t, specRepo.rows, 4)
}

func TestBulkApply_InvalidValueFailsBeforeAnyWrite(t *testing.T) {
	productRepo := newFakeProductRepo(&model.Product{ID: "p1", CategoryID: 1, Status: "active"})
	specRepo := newFakeSpecRepo()
	svc := newProductService(productRepo, specRepo)

	_, err := svc.BulkApplySpecification(context.Background(), &interfaces.BulkApplyRequest{
		TemplateID: 2,
		Value:      "NotASocket",
		ProductIDs: []string{"p1"},
	})

	require.Error(t, err)
	var valueErr *ValueError
	require.ErrorAs(t, err, &valueErr)
	assert.Empty(t, specRepo.rows)
}

func TestBulkApply_UnknownProduct(t *testing.T) {
	svc := newProductService(newFakeProductRepo(), newFakeSpecRepo())

	result, err := svc.BulkApplySpecification(context.Background(), &interfaces.BulkApplyRequest{
		TemplateID: 3,
		Value:      65,
		ProductIDs: []string{"ghost"},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, result.SuccessCount)
	assert.Equal(t, 1, result.ErrorCount)
}

func TestGetProduct_ResolvesSpecifications(t *testing.T) {
	productRepo := newFakeProductRepo(&model.Product{ID: "p1", Name: "Ryzen", CategoryID: 1, Status: "active"})
	socket := "AM4"
	specRepo := newFakeSpecRepo(&model.ProductSpec{ProductID: "p1", TemplateID: 2, ValueEnum: &socket, Value: "AM4"})
	svc := newProductService(productRepo, specRepo)

	info, err := svc.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, info.Specifications, 1)
	assert.Equal(t, "socket", info.Specifications[0].Name)
	assert.Equal(t, specs.EnumValue("AM4"), info.Specifications[0].Value)
}

func TestGetProduct_NotFound(t *testing.T) {
	svc := newProductService(newFakeProductRepo(), newFakeSpecRepo())

	_, err := svc.GetProduct(context.Background(), "ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}
