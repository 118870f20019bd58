package engine

import "strings"

// synonymEntry 同義詞表的一筆資料
type synonymEntry struct {
	key      string
	synonyms []string
}

// 常見食材的同義詞，依序比對以確保結果穩定
var synonymTable = []synonymEntry{
	{"green onion", []string{"scallion", "spring onion"}},
	{"cilantro", []string{"coriander", "chinese parsley"}},
	{"bell pepper", []string{"capsicum", "sweet pepper"}},
	{"eggplant", []string{"aubergine", "brinjal"}},
	{"zucchini", []string{"courgette"}},
	{"chickpea", []string{"garbanzo", "garbanzo bean"}},
	{"ground beef", []string{"minced beef", "beef mince"}},
	{"ground pork", []string{"minced pork", "pork mince"}},
	{"shrimp", []string{"prawn", "prawns"}},
	{"olive oil", []string{"evoo", "extra virgin olive oil"}},
	{"soy sauce", []string{"shoyu", "soya sauce"}},
	{"flour", []string{"all-purpose flour", "plain flour"}},
	{"sugar", []string{"granulated sugar", "white sugar"}},
	{"powdered sugar", []string{"icing sugar", "confectioners sugar"}},
	{"heavy cream", []string{"double cream", "whipping cream"}},
	{"baking soda", []string{"bicarbonate of soda", "bicarb"}},
	{"arugula", []string{"rocket"}},
	{"cornstarch", []string{"cornflour", "corn starch"}},
	{"tomato", []string{"tomatoes", "roma tomato"}},
	{"potato", []string{"potatoes", "spud"}},
	{"chili", []string{"chile", "chilli", "hot pepper"}},
	{"garlic", []string{"garlic clove", "garlic cloves"}},
	{"egg", []string{"eggs", "large egg"}},
	{"rice", []string{"white rice", "jasmine rice"}},
	{"noodle", []string{"noodles", "pasta"}},
	{"scallop", []string{"scallops"}},
	{"beet", []string{"beetroot"}},
	{"snow pea", []string{"mangetout"}},
}

// generateAliases 產生模糊搜尋用的別名（全小寫、去重、保留順序）
func generateAliases(id, name string) []string {
	lowerName := strings.ToLower(strings.TrimSpace(name))

	aliases := make([]string, 0, 6)
	seen := make(map[string]struct{}, 6)
	add := func(alias string) {
		alias = strings.ToLower(strings.TrimSpace(alias))
		if alias == "" {
			return
		}
		if _, ok := seen[alias]; ok {
			return
		}
		seen[alias] = struct{}{}
		aliases = append(aliases, alias)
	}

	add(lowerName)
	add(idToWords(id))

	// 雙向包含：名稱包含關鍵字，或關鍵字包含名稱
	if lowerName != "" {
		for _, entry := range synonymTable {
			if strings.Contains(lowerName, entry.key) || strings.Contains(entry.key, lowerName) {
				for _, s := range entry.synonyms {
					add(s)
				}
			}
		}
	}

	add(pluralVariant(lowerName))

	return aliases
}

// idToWords 將識別碼的分隔符號換成空白
func idToWords(id string) string {
	return strings.NewReplacer("-", " ", "_", " ").Replace(id)
}

// pluralVariant 單複數互換的簡易版本
func pluralVariant(name string) string {
	if name == "" {
		return ""
	}
	if strings.HasSuffix(name, "s") {
		if len(name) > 3 {
			return strings.TrimSuffix(name, "s")
		}
		return ""
	}
	return name + "s"
}
