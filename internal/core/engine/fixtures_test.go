package engine

import (
	"meal-planner/internal/pkg/common"
)

func ing(id, name string) common.RecipeIngredient {
	return common.RecipeIngredient{IngredientID: common.StringPtr(id), Name: name}
}

func adhoc(name string) common.RecipeIngredient {
	return common.RecipeIngredient{Name: name}
}

func recipe(id string, ingredients ...common.RecipeIngredient) common.Recipe {
	return common.Recipe{ID: id, Name: id, Ingredients: ingredients}
}

// bakingCatalog R1={flour,sugar,egg} R2={flour,sugar,butter} R3={rice,fish}
func bakingCatalog() []common.Recipe {
	r1 := recipe("r1", ing("flour", "Flour"), ing("sugar", "Sugar"), ing("egg", "Egg"))
	r1.Name, r1.Cuisine, r1.PrepTime, r1.CookTime = "Sponge cake", "French", 10, 20
	r2 := recipe("r2", ing("flour", "Flour"), ing("sugar", "Sugar"), ing("butter", "Butter"))
	r2.Name, r2.Cuisine, r2.PrepTime, r2.CookTime = "Shortbread", "french", 5, 15
	r3 := recipe("r3", ing("rice", "Rice"), ing("fish", "Fish"))
	r3.Name, r3.Cuisine, r3.PrepTime, r3.CookTime = "Sushi bowl", "Japanese", 30, 30
	return []common.Recipe{r1, r2, r3}
}
