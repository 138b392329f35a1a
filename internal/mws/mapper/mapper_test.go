package mapper

import (
	"encoding/xml"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/mws-feed/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// AccessorKey
// =============================================================================

func TestAccessorKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"StandardProductID", "standard_product_id"},
		{"SKU", "sku"},
		{"ItemPackageQuantity", "item_package_quantity"},
		{"MSRP", "msrp"},
		{"Prop65", "prop65"},
		{"ExternalProductUrl", "external_product_url"},
		{"IsGiftWrapAvailable", "is_gift_wrap_available"},
		{"MfrPartNumber", "mfr_part_number"},
		{"DescriptionData", "description_data"},
		{"AmazonProfile", "amazon_profile"},
		{"Title", "title"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			key := AccessorKey(tt.input)
			assert.Equal(t, tt.expected, key)
			assert.Equal(t, key, AccessorKey(key), "이미 변환된 키는 그대로 유지되어야 합니다")
		})
	}
}

// =============================================================================
// Serialize / isPresent
// =============================================================================

func TestSerialize(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	var nilTime *time.Time

	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"nil", nil, ""},
		{"문자열", "abc", "abc"},
		{"정수", 42, "42"},
		{"0", 0, "0"},
		{"실수", 9.99, "9.99"},
		{"bool", false, "false"},
		{"시각", ts, "2024-03-01T12:30:00Z"},
		{"영 시각", time.Time{}, ""},
		{"nil 시각 포인터", nilTime, ""},
		{"날짜", NewDate(2024, time.March, 1), "2024-03-01"},
		{"날짜 포인터", &Date{ts}, "2024-03-01"},
		{"정수 포인터", func() *int { v := 7; return &v }(), "7"},
		{"바이트", []byte("raw"), "raw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Serialize(tt.input))
		})
	}
}

func TestIsPresent(t *testing.T) {
	t.Parallel()

	var nilMap map[string]any
	var nilPtr *int

	assert.False(t, isPresent(nil))
	assert.False(t, isPresent(""))
	assert.False(t, isPresent([]string{}))
	assert.False(t, isPresent(nilMap))
	assert.False(t, isPresent(nilPtr))
	assert.False(t, isPresent(time.Time{}))
	assert.False(t, isPresent(Date{}))
	assert.False(t, isPresent(Element{Name: "Empty"}))

	assert.True(t, isPresent(0))
	assert.True(t, isPresent(false))
	assert.True(t, isPresent("x"))
	assert.True(t, isPresent([]string{"a"}))
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2023-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2023-12-31", d.String())

	_, err = ParseDate("31/12/2023")
	assert.Error(t, err)
}

// =============================================================================
// Resolve
// =============================================================================

type widget struct {
	SKU           string
	Title         string
	Brand         string `feed:"brand_name"`
	Quantity      int    `feed:"ItemPackageQuantity"`
	AmazonProfile *widgetProfile
	internal      string
}

func (w *widget) GetTitle() any {
	return "computed " + w.Title
}

type widgetProfile struct {
	Title     string
	Condition string
}

func TestResolve_Precedence(t *testing.T) {
	t.Parallel()

	m := MustNew(WithDefaults(map[string]any{
		"condition":       "New",
		"title":           "default title",
		"number_of_items": 1,
	}))

	record := map[string]any{
		"sku":   "ABC-1",
		"title": "record title",
		"amazon_profile": map[string]any{
			"title":     "profile title",
			"condition": "",
		},
	}

	assert.Equal(t, "profile title", m.Resolve(record, F("Title")), "프로필 값이 레코드보다 우선해야 합니다")
	assert.Equal(t, "ABC-1", m.Resolve(record, F("SKU")), "프로필에 없으면 레코드 값을 사용해야 합니다")
	assert.Equal(t, "New", m.Resolve(record, F("Condition")), "빈 프로필 값은 다음 단계로 넘어가야 합니다")
	assert.Equal(t, 1, m.Resolve(record, F("NumberOfItems")), "레코드에 없으면 기본값을 사용해야 합니다")
	assert.Nil(t, m.Resolve(record, F("Brand")), "어디에도 없으면 nil이어야 합니다")
}

// computedDefaults 매퍼를 임베드하고 계산 메서드로 기본값을 제공하는 기본값 원천
type computedDefaults struct {
	*Mapper
	PackageQuantity int
}

func (d *computedDefaults) GetItemPackageQuantity() any {
	return d.PackageQuantity * 2
}

func TestResolve_MapperEmbeddingDefaults(t *testing.T) {
	t.Parallel()

	d := &computedDefaults{PackageQuantity: 3}
	d.Mapper = MustNew(WithDefaults(d))

	record := map[string]any{"sku": "ABC-1"}

	assert.Equal(t, 6, d.Resolve(record, F("ItemPackageQuantity")), "기본값 원천의 계산 메서드를 사용해야 합니다")
	assert.Equal(t, "ABC-1", d.Resolve(record, F("SKU")))

	record["item_package_quantity"] = 10
	assert.Equal(t, 10, d.Resolve(record, F("ItemPackageQuantity")), "레코드 값이 기본값보다 우선해야 합니다")
}

func TestResolve_GetterWinsOverAttribute(t *testing.T) {
	t.Parallel()

	m := MustNew(WithDefaults(Attrs{"brand": "fallback brand"}))

	record := Object{
		Getters: Getters{
			"title": func() any { return "computed title" },
			"brand": func() any { return "" },
		},
		Attrs: Attrs{
			"title": "plain title",
			"brand": "plain brand",
			"sku":   "S-1",
		},
	}

	assert.Equal(t, "computed title", m.Resolve(record, F("Title")))
	assert.Equal(t, "S-1", m.Resolve(record, F("SKU")))

	// 계산 메서드가 빈 값을 반환하면 같은 대상의 일반 속성 대신 다음 단계를 본다.
	assert.Equal(t, "fallback brand", m.Resolve(record, F("Brand")))
}

func TestResolve_Struct(t *testing.T) {
	t.Parallel()

	m := MustNew()

	w := &widget{
		SKU:      "W-1",
		Title:    "widget",
		Brand:    "Acme",
		Quantity: 0,
		AmazonProfile: &widgetProfile{
			Condition: "Refurbished",
		},
		internal: "hidden",
	}

	assert.Equal(t, "W-1", m.Resolve(w, F("SKU")))
	assert.Equal(t, "computed widget", m.Resolve(w, F("Title")), "Get<Name> 메서드가 필드보다 우선해야 합니다")
	assert.Equal(t, "Acme", m.Resolve(w, F("Brand")))
	assert.Equal(t, "Acme", m.Resolve(*w, F("Brand")), "구조체 값도 조회할 수 있어야 합니다")
	assert.Equal(t, 0, m.Resolve(w, F("ItemPackageQuantity")), "feed 태그로 필드를 찾고 0은 값으로 취급해야 합니다")
	assert.Equal(t, "Refurbished", m.Resolve(w, F("Condition")), "구조체 프로필 필드를 사용해야 합니다")
	assert.Nil(t, m.Resolve(w, F("Internal")))
}

type profiledRecord struct {
	attrs   Attrs
	profile any
}

func (r profiledRecord) Attr(key string) (any, bool) { return r.attrs.Attr(key) }
func (r profiledRecord) AmazonProfile() any          { return r.profile }

func TestResolve_ProfileProvider(t *testing.T) {
	t.Parallel()

	m := MustNew()

	r := profiledRecord{
		attrs:   Attrs{"title": "own", "brand": "own brand"},
		profile: Attrs{"title": "profiled"},
	}
	assert.Equal(t, "profiled", m.Resolve(r, F("Title")))
	assert.Equal(t, "own brand", m.Resolve(r, F("Brand")))

	r.profile = nil
	assert.Equal(t, "own", m.Resolve(r, F("Title")))
}

func TestResolve_CustomResolverReplacesChain(t *testing.T) {
	t.Parallel()

	m := MustNew()
	f := Field{
		Name: "Title",
		Resolve: func(record any) any {
			return "custom:" + record.(Attrs)["sku"].(string)
		},
	}

	record := Attrs{"sku": "X", "title": "ignored"}
	assert.Equal(t, "custom:X", m.Resolve(record, f))
}

// =============================================================================
// New
// =============================================================================

func TestNew_FieldListValidation(t *testing.T) {
	t.Parallel()

	_, err := New(WithBaseFields(F("SKU"), F("SKU")))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	assert.Contains(t, err.Error(), "중복된 필드")

	_, err = New(WithDescriptionFields(F("Bad Name")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'Bad Name'")

	_, err = New(WithDescriptionFields(F("")))
	require.Error(t, err)

	// 서로 다른 목록에서는 같은 이름을 허용한다.
	_, err = New(WithBaseFields(F("Title")), WithDescriptionFields(F("Title")))
	assert.NoError(t, err)

	assert.Panics(t, func() { MustNew(WithBaseFields(F("A"), F("A"))) })
}

func TestDefaultFieldLists(t *testing.T) {
	t.Parallel()

	base := BaseFields()
	description := DescriptionFields()
	require.Len(t, base, 13)
	require.Len(t, description, 31)
	assert.Equal(t, "SKU", base[0].Name)
	assert.Equal(t, "NumberOfItems", base[12].Name)
	assert.Equal(t, "Title", description[0].Name)
	assert.Equal(t, "MaxAggregateShipQuantity", description[30].Name)

	// 반환된 목록을 수정해도 원본은 바뀌지 않는다.
	base[0].Name = "Changed"
	assert.Equal(t, "SKU", BaseFields()[0].Name)

	m := MustNew()
	fields := m.BaseFields()
	fields[0].Name = "Changed"
	assert.Equal(t, "SKU", m.BaseFields()[0].Name)
	assert.Len(t, m.DescriptionFields(), 31)
}

// =============================================================================
// BuildProduct
// =============================================================================

func TestBuildProduct_OrderAndOmission(t *testing.T) {
	t.Parallel()

	m := MustNew()
	record := map[string]any{
		"title":                 "Widget",
		"sku":                   "ABC-1",
		"item_package_quantity": 2,
		"launch_date":           NewDate(2024, time.March, 1),
		"brand":                 "",
		"unknown_key":           "ignored",
	}

	p := m.BuildProduct(record)

	assert.Equal(t, ProductElement, p.Name)
	assert.Equal(t, []string{"SKU", "LaunchDate", "ItemPackageQuantity", "DescriptionData"}, p.ChildNames())

	launch, ok := p.Child("LaunchDate")
	require.True(t, ok)
	assert.Equal(t, "2024-03-01", launch.Text)

	qty, _ := p.Child("ItemPackageQuantity")
	assert.Equal(t, "2", qty.Text)

	desc, ok := p.Child(DescriptionDataElement)
	require.True(t, ok)
	assert.Equal(t, []string{"Title"}, desc.ChildNames())
}

func TestBuildProduct_EmptyRecord(t *testing.T) {
	t.Parallel()

	p := MustNew().BuildProduct(map[string]any{})
	assert.Equal(t, []string{"DescriptionData"}, p.ChildNames())

	out, err := xml.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, "<Product><DescriptionData></DescriptionData></Product>", string(out))
}

func TestBuildProduct_RepeatedAndNestedValues(t *testing.T) {
	t.Parallel()

	m := MustNew()
	record := map[string]any{
		"sku": "ABC-1",
		"standard_product_id": map[string]any{
			"Value": "012345678905",
			"Type":  "UPC",
		},
		"bullet_point": []any{"first", "", "second"},
		"package_weight": []Element{
			{Name: "Value", Text: "1.5"},
		},
		"shipping_weight": map[string]any{
			"@unitOfMeasure": "LB",
			"#text":          1.5,
		},
	}

	p := m.BuildProduct(record)

	spid, ok := p.Child("StandardProductID")
	require.True(t, ok)
	assert.Equal(t, []string{"Type", "Value"}, spid.ChildNames(), "맵은 키 사전순으로 하위 요소가 되어야 합니다")

	desc, _ := p.Child(DescriptionDataElement)
	bullets := desc.ChildrenNamed("BulletPoint")
	require.Len(t, bullets, 2, "빈 항목은 생략되어야 합니다")
	assert.Equal(t, "first", bullets[0].Text)
	assert.Equal(t, "second", bullets[1].Text)

	weight, ok := desc.Child("PackageWeight")
	require.True(t, ok)
	assert.Equal(t, "Value", weight.Children[0].Name)

	shipping, ok := desc.Child("ShippingWeight")
	require.True(t, ok)
	assert.Equal(t, "1.5", shipping.Text)
	unit, ok := shipping.Attr("unitOfMeasure")
	require.True(t, ok)
	assert.Equal(t, "LB", unit)
}

func TestBuildProduct_CustomSerializer(t *testing.T) {
	t.Parallel()

	m := MustNew(WithBaseFields(
		F("SKU"),
		Field{Name: "LaunchDate", Serialize: func(v any) string {
			return v.(time.Time).Format("20060102")
		}},
	))

	p := m.BuildProduct(Attrs{
		"sku":         "A",
		"launch_date": time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	})

	launch, ok := p.Child("LaunchDate")
	require.True(t, ok)
	assert.Equal(t, "20240102", launch.Text)
}

func TestWithSerializer(t *testing.T) {
	t.Parallel()

	m := MustNew(WithSerializer("Description", PlainText))

	p := m.BuildProduct(Attrs{
		"sku":         "A",
		"description": "<p>Soft &amp; <b>warm</b></p><ul><li>One</li><li>Two</li></ul>",
		"title":       "<b>Bold</b> title",
	})

	description, _ := p.Child(DescriptionDataElement)
	text, ok := description.Child("Description")
	require.True(t, ok)
	assert.Equal(t, "Soft & warm One Two", text.Text)

	// 지정하지 않은 필드는 그대로 출력된다.
	title, _ := description.Child("Title")
	assert.Equal(t, "<b>Bold</b> title", title.Text)

	_, err := New(WithSerializer("Unknown", PlainText))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.NotFound))
	assert.Contains(t, err.Error(), "'Unknown'")
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"일반 문자열", "Plain  text", "Plain  text"},
		{"숫자", 42, "42"},
		{"태그 제거", "<b>Hello</b> <i>World</i>", "Hello World"},
		{"엔티티 디코딩", "Tom &amp; Jerry", "Tom & Jerry"},
		{"줄바꿈 태그", "line1<br>line2<br/>line3", "line1 line2 line3"},
		{"스크립트 제거", "<script>alert(1)</script>Safe", "Safe"},
		{"부등호 유지", "3 < 5 &lt; 7", "3 < 5 < 7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, PlainText(tt.input))
		})
	}
}

// =============================================================================
// Element
// =============================================================================

func TestElement_XMLRoundTrip(t *testing.T) {
	t.Parallel()

	e := Element{Name: "Product", Children: []Element{
		{Name: "SKU", Text: "A&B"},
		{Name: "DescriptionData", Children: []Element{
			{Name: "Title", Text: "<T>"},
			{Name: "MSRP", Attrs: []Attr{{Name: "currency", Value: "USD"}}, Text: "9.99"},
		}},
	}}

	out, err := xml.Marshal(e)
	require.NoError(t, err)
	assert.Equal(t, `<Product><SKU>A&amp;B</SKU><DescriptionData><Title>&lt;T&gt;</Title><MSRP currency="USD">9.99</MSRP></DescriptionData></Product>`, string(out))

	var parsed Element
	require.NoError(t, xml.Unmarshal(out, &parsed))
	assert.Equal(t, e, parsed)
}
