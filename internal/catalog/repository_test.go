package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lucaferrante/fornello-backend/pkg/db/models"
	"github.com/lucaferrante/fornello-backend/pkg/enums"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS menu_items (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  base_price TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  is_available INTEGER NOT NULL DEFAULT 1,
  sort_order INTEGER NOT NULL DEFAULT 0,
  prep_minutes INTEGER,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS customization_groups (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  kind TEXT NOT NULL,
  is_required INTEGER NOT NULL DEFAULT 0,
  min_selections INTEGER NOT NULL DEFAULT 0,
  max_selections INTEGER,
  sort_order INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS customization_options (
  id TEXT PRIMARY KEY,
  group_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  category TEXT,
  price_modifier TEXT NOT NULL DEFAULT '0',
  modifier_type TEXT NOT NULL DEFAULT 'flat',
  is_default INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  sort_order INTEGER NOT NULL DEFAULT 0,
  max_quantity INTEGER,
  is_vegetarian INTEGER NOT NULL DEFAULT 0,
  is_vegan INTEGER NOT NULL DEFAULT 0,
  is_gluten_free INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS menu_item_groups (
  id TEXT PRIMARY KEY,
  menu_item_id TEXT NOT NULL,
  group_id TEXT NOT NULL,
  is_required INTEGER,
  sort_order INTEGER
);`,
		`CREATE TABLE IF NOT EXISTS specialty_presets (
  id TEXT PRIMARY KEY,
  menu_item_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  base_price TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  sort_order INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS preset_prices (
  id TEXT PRIMARY KEY,
  preset_id TEXT NOT NULL,
  size_option_id TEXT NOT NULL,
  price TEXT NOT NULL
);`,
		`CREATE TABLE IF NOT EXISTS preset_selections (
  id TEXT PRIMARY KEY,
  preset_id TEXT NOT NULL,
  option_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  section TEXT NOT NULL DEFAULT 'whole',
  intensity TEXT NOT NULL DEFAULT 'regular',
  is_core INTEGER NOT NULL DEFAULT 0
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func mustCreateTestItem(t *testing.T, db *gorm.DB) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{
		ID:          uuid.New(),
		Name:        "Build Your Own Pizza",
		BasePrice:   decimal.RequireFromString("12.99"),
		IsActive:    true,
		IsAvailable: true,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func mustCreateTestGroup(t *testing.T, db *gorm.DB, itemID uuid.UUID, name string, kind enums.GroupKind) *models.CustomizationGroup {
	t.Helper()
	group := &models.CustomizationGroup{
		ID:       uuid.New(),
		Name:     name,
		Kind:     kind,
		IsActive: true,
	}
	require.NoError(t, db.Create(group).Error)
	link := &models.MenuItemGroup{
		ID:         uuid.New(),
		MenuItemID: itemID,
		GroupID:    group.ID,
	}
	require.NoError(t, db.Create(link).Error)
	return group
}

func mustCreateTestOption(t *testing.T, db *gorm.DB, groupID uuid.UUID, name, modifier string, active bool) *models.CustomizationOption {
	t.Helper()
	option := &models.CustomizationOption{
		ID:            uuid.New(),
		GroupID:       groupID,
		Name:          name,
		PriceModifier: decimal.RequireFromString(modifier),
		ModifierType:  enums.PriceModifierPerUnit,
		IsActive:      active,
	}
	require.NoError(t, db.Create(option).Error)
	return option
}

func TestRepositoryMenuFlow(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	item := mustCreateTestItem(t, db)
	group := mustCreateTestGroup(t, db, item.ID, "Toppings", enums.GroupKindMultiSelect)
	pepperoni := mustCreateTestOption(t, db, group.ID, "Pepperoni", "1.50", true)
	mustCreateTestOption(t, db, group.ID, "Anchovies", "1.25", false)

	inactive := &models.MenuItem{
		ID:        uuid.New(),
		Name:      "Retired Calzone",
		BasePrice: decimal.RequireFromString("9.99"),
		IsActive:  false,
	}
	require.NoError(t, db.Create(inactive).Error)

	items, err := repo.ListMenuItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Len(t, items[0].GroupLinks, 1)
	require.NotNil(t, items[0].GroupLinks[0].Group)

	options := items[0].GroupLinks[0].Group.Options
	require.Len(t, options, 1, "inactive options must be filtered")
	assert.Equal(t, pepperoni.ID, options[0].ID)

	found, err := repo.FindMenuItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.Name, found.Name)

	_, err = repo.FindMenuItem(ctx, inactive.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryPresetFlow(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	item := mustCreateTestItem(t, db)
	group := mustCreateTestGroup(t, db, item.ID, "Toppings", enums.GroupKindMultiSelect)
	sausage := mustCreateTestOption(t, db, group.ID, "Sausage", "1.50", true)

	preset := &models.SpecialtyPreset{
		ID:         uuid.New(),
		MenuItemID: item.ID,
		Name:       "Meat Lovers",
		BasePrice:  decimal.RequireFromString("14.99"),
		IsActive:   true,
	}
	require.NoError(t, db.Create(preset).Error)
	require.NoError(t, db.Create(&models.PresetPrice{
		ID:           uuid.New(),
		PresetID:     preset.ID,
		SizeOptionID: uuid.New(),
		Price:        decimal.RequireFromString("16.99"),
	}).Error)
	require.NoError(t, db.Create(&models.PresetSelection{
		ID:        uuid.New(),
		PresetID:  preset.ID,
		OptionID:  sausage.ID,
		Quantity:  1,
		Section:   enums.SectionWhole,
		Intensity: enums.IntensityRegular,
	}).Error)

	presets, err := repo.ListPresets(ctx)
	require.NoError(t, err)
	require.Len(t, presets, 1)
	require.Len(t, presets[0].Prices, 1)
	require.Len(t, presets[0].Selections, 1)

	found, err := repo.FindPreset(ctx, preset.ID)
	require.NoError(t, err)
	assert.Equal(t, preset.Name, found.Name)
	assert.True(t, found.Prices[0].Price.Equal(decimal.RequireFromString("16.99")))
}
