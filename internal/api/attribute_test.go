package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-api/backend/internal/models"
	"github.com/pageza/recipe-api/backend/internal/testhelpers"
)

func TestTagsAuthRequired(t *testing.T) {
	env := setupTestEnv(t)

	w := PerformRequestWithToken(env.router, "GET", tagsURL, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = PerformRequestWithToken(env.router, "GET", ingredsURL, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRetrieveTags(t *testing.T) {
	env := setupTestEnv(t)
	user, token := env.CreateTestUserAndToken(t, "user@example.com")
	testhelpers.CreateTestTag(t, env.db, user.ID, "Vegan")
	testhelpers.CreateTestTag(t, env.db, user.ID, "Dessert")

	w := PerformRequestWithToken(env.router, "GET", tagsURL, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Vegan", "Dessert"}, names(decode[[]attributeBody](t, w)))
}

func TestTagsLimitedToUser(t *testing.T) {
	env := setupTestEnv(t)
	user, token := env.CreateTestUserAndToken(t, "user@example.com")
	other := testhelpers.CreateTestUser(t, env.db, "other@example.com")
	testhelpers.CreateTestTag(t, env.db, other.ID, "Fruity")
	tag := testhelpers.CreateTestTag(t, env.db, user.ID, "Comfort Food")

	w := PerformRequestWithToken(env.router, "GET", tagsURL, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	tags := decode[[]attributeBody](t, w)
	require.Len(t, tags, 1)
	assert.Equal(t, tag.ID, tags[0].ID)
	assert.Equal(t, "Comfort Food", tags[0].Name)
}

func TestUpdateTag(t *testing.T) {
	env := setupTestEnv(t)
	user, token := env.CreateTestUserAndToken(t, "user@example.com")
	tag := testhelpers.CreateTestTag(t, env.db, user.ID, "After Dinner")

	w := PerformRequestWithToken(env.router, "PATCH", fmt.Sprintf("%s/%d", tagsURL, tag.ID),
		map[string]string{"name": "Dessert"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Dessert", decode[attributeBody](t, w).Name)

	var reloaded models.Tag
	require.NoError(t, env.db.First(&reloaded, tag.ID).Error)
	assert.Equal(t, "Dessert", reloaded.Name)
}

func TestFullUpdateTagRequiresName(t *testing.T) {
	env := setupTestEnv(t)
	user, token := env.CreateTestUserAndToken(t, "user@example.com")
	tag := testhelpers.CreateTestTag(t, env.db, user.ID, "Breakfast")

	w := PerformRequestWithToken(env.router, "PUT", fmt.Sprintf("%s/%d", tagsURL, tag.ID),
		map[string]string{}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[errorBody](t, w).Fields, "name")
}

func TestDeleteTag(t *testing.T) {
	env := setupTestEnv(t)
	user, token := env.CreateTestUserAndToken(t, "user@example.com")
	recipe := testhelpers.CreateTestRecipe(t, env.db, user.ID, "Porridge", "Breakfast")

	w := PerformRequestWithToken(env.router, "DELETE", fmt.Sprintf("%s/%d", tagsURL, recipe.Tags[0].ID), nil, token)
	require.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	env.db.Model(&models.Tag{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count)

	w = PerformRequestWithToken(env.router, "GET", fmt.Sprintf("%s/%d", recipesURL, recipe.ID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[recipeBody](t, w).Tags)
}

func TestDeleteOtherUsersTag(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.CreateTestUserAndToken(t, "user@example.com")
	other := testhelpers.CreateTestUser(t, env.db, "other@example.com")
	tag := testhelpers.CreateTestTag(t, env.db, other.ID, "Theirs")

	w := PerformRequestWithToken(env.router, "DELETE", fmt.Sprintf("%s/%d", tagsURL, tag.ID), nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTagsCollectionHasNoPost(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.CreateTestUserAndToken(t, "user@example.com")

	w := PerformRequestWithToken(env.router, "POST", tagsURL, map[string]string{"name": "New"}, token)
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, `Method "POST" not allowed.`, decode[errorBody](t, w).Error)
}

func TestFilterTagsAssignedToRecipes(t *testing.T) {
	env := setupTestEnv(t)
	user, token := env.CreateTestUserAndToken(t, "user@example.com")
	recipe := testhelpers.CreateTestRecipe(t, env.db, user.ID, "Apple Crumble", "Breakfast")
	testhelpers.CreateTestTag(t, env.db, user.ID, "Lunch")

	w := PerformRequestWithToken(env.router, "GET", tagsURL+"?assigned_only=1", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	tags := decode[[]attributeBody](t, w)
	require.Len(t, tags, 1)
	assert.Equal(t, recipe.Tags[0].ID, tags[0].ID)
}

func TestFilteredTagsUnique(t *testing.T) {
	env := setupTestEnv(t)
	user, token := env.CreateTestUserAndToken(t, "user@example.com")
	tag := testhelpers.CreateTestTag(t, env.db, user.ID, "Breakfast")
	testhelpers.CreateTestTag(t, env.db, user.ID, "Dinner")
	r1 := testhelpers.CreateTestRecipe(t, env.db, user.ID, "Pancakes")
	r2 := testhelpers.CreateTestRecipe(t, env.db, user.ID, "Porridge")
	require.NoError(t, env.db.Model(r1).Association("Tags").Append(tag))
	require.NoError(t, env.db.Model(r2).Association("Tags").Append(tag))

	w := PerformRequestWithToken(env.router, "GET", tagsURL+"?assigned_only=1", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]attributeBody](t, w), 1)
}

func TestAssignedOnlyRejectsGarbage(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.CreateTestUserAndToken(t, "user@example.com")

	w := PerformRequestWithToken(env.router, "GET", ingredsURL+"?assigned_only=maybe", nil, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[errorBody](t, w).Fields, "assigned_only")

	w = PerformRequestWithToken(env.router, "GET", ingredsURL+"?assigned_only=0", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRetrieveIngredients(t *testing.T) {
	env := setupTestEnv(t)
	user, token := env.CreateTestUserAndToken(t, "user@example.com")
	other := testhelpers.CreateTestUser(t, env.db, "other@example.com")
	testhelpers.CreateTestIngredient(t, env.db, user.ID, "Kale")
	testhelpers.CreateTestIngredient(t, env.db, user.ID, "Vanilla")
	testhelpers.CreateTestIngredient(t, env.db, other.ID, "Salt")

	w := PerformRequestWithToken(env.router, "GET", ingredsURL, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Vanilla", "Kale"}, names(decode[[]attributeBody](t, w)))
}

func TestUpdateAndDeleteIngredient(t *testing.T) {
	env := setupTestEnv(t)
	user, token := env.CreateTestUserAndToken(t, "user@example.com")
	ingredient := testhelpers.CreateTestIngredient(t, env.db, user.ID, "Cilantro")
	url := fmt.Sprintf("%s/%d", ingredsURL, ingredient.ID)

	w := PerformRequestWithToken(env.router, "PUT", url, map[string]string{"name": "Coriander"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Coriander", decode[attributeBody](t, w).Name)

	w = PerformRequestWithToken(env.router, "GET", url, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Coriander", decode[attributeBody](t, w).Name)

	w = PerformRequestWithToken(env.router, "DELETE", url, nil, token)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = PerformRequestWithToken(env.router, "GET", url, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFilterIngredientsAssignedToRecipes(t *testing.T) {
	env := setupTestEnv(t)
	user, token := env.CreateTestUserAndToken(t, "user@example.com")
	apples := testhelpers.CreateTestIngredient(t, env.db, user.ID, "Apples")
	testhelpers.CreateTestIngredient(t, env.db, user.ID, "Turkey")
	recipe := testhelpers.CreateTestRecipe(t, env.db, user.ID, "Apple Crumble")
	require.NoError(t, env.db.Model(recipe).Association("Ingredients").Append(apples))

	w := PerformRequestWithToken(env.router, "GET", ingredsURL+"?assigned_only=true", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Apples"}, names(decode[[]attributeBody](t, w)))
}
