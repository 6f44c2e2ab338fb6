package repository

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp csv: %v", err)
	}
	return path
}

func TestLoadProductsFromCSV(t *testing.T) {
	path := writeTempCSV(t, `product_id,product_name,insurance_company,min_age,max_age,insurance_type,payment_type,min_premium,risk_level,coverage,feature_keywords,sales_channel,sales_scope
P001,测试年金,测试人寿,18,65,养老年金,期缴,1.5,中低,养老年金给付,养老、稳健,银保渠道,全国
P002,测试终身寿,测试人寿,20,70,增额终身寿,趸交,10,中高,身故保障,增额|终身,代理人渠道,北京、上海
`)

	products, err := LoadProductsFromCSV(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("Expected 2 products, got %d", len(products))
	}

	p := products[0]
	if p.ProductID != "P001" || p.MinAge != 18 || p.MaxAge != 65 {
		t.Errorf("First product parsed incorrectly: %+v", p)
	}
	if p.MinPremium != 1.5 {
		t.Errorf("Expected min_premium 1.5, got %f", p.MinPremium)
	}
	if !reflect.DeepEqual(p.FeatureKeywords, []string{"养老", "稳健"}) {
		t.Errorf("Expected keywords [养老 稳健], got %v", p.FeatureKeywords)
	}
	if !reflect.DeepEqual(products[1].FeatureKeywords, []string{"增额", "终身"}) {
		t.Errorf("Expected pipe-separated keywords, got %v", products[1].FeatureKeywords)
	}
}

func TestLoadProductsFromCSV_SkipsRowsWithoutID(t *testing.T) {
	path := writeTempCSV(t, `product_id,product_name
P001,有ID的产品
,没有ID的产品
`)

	products, err := LoadProductsFromCSV(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(products) != 1 {
		t.Errorf("Expected rows without product_id to be dropped, got %d products", len(products))
	}
}

func TestLoadProductsFromCSV_MissingFile(t *testing.T) {
	if _, err := LoadProductsFromCSV(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadProductsFromCSV_HeaderOnly(t *testing.T) {
	path := writeTempCSV(t, "product_id,product_name\n")
	if _, err := LoadProductsFromCSV(path); err == nil {
		t.Error("Expected error for CSV without data rows")
	}
}

func TestParseKeywords(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", []string{}},
		{"json array", `["养老","年金"]`, []string{"养老", "年金"}},
		{"dunhao separated", "养老、年金、稳健", []string{"养老", "年金", "稳健"}},
		{"pipe separated", "养老|年金", []string{"养老", "年金"}},
		{"whitespace trimmed", " 养老 、 年金 ", []string{"养老", "年金"}},
	}

	for _, tc := range cases {
		if got := ParseKeywords(tc.input); !reflect.DeepEqual(got, tc.expected) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.expected, got)
		}
	}
}
