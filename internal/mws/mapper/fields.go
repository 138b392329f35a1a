package mapper

// Resolver 레코드에서 필드 값을 직접 계산하는 함수입니다.
// 필드에 Resolver가 지정되면 기본 3단계 조회(프로필 -> 레코드 -> 기본값)를 대체합니다.
type Resolver func(record any) any

// Serializer 텍스트가 아닌 값을 요소 텍스트로 변환하는 함수입니다.
type Serializer func(value any) string

// Field 피드에 출력될 요소 하나의 기술자(Descriptor)입니다.
// Name은 출력 요소의 이름이며, 조회 키는 AccessorKey(Name)으로 결정됩니다.
type Field struct {
	Name      string
	Resolve   Resolver
	Serialize Serializer
}

// F Name만 가진 필드 기술자를 생성합니다.
func F(name string) Field {
	return Field{Name: name}
}

// baseFieldNames 상품 요소에 직접 포함되는 기본 속성 (출력 순서)
var baseFieldNames = [...]string{
	"SKU",
	"StandardProductID",
	"ProductTaxCode",
	"LaunchDate",
	"DiscontinueDate",
	"ReleaseDate",
	"ExternalProductUrl",
	"OffAmazonChannel",
	"OnAmazonChannel",
	"Condition",
	"Rebate",
	"ItemPackageQuantity",
	"NumberOfItems",
}

// descriptionFieldNames DescriptionData 요소에 포함되는 설명 속성 (출력 순서)
var descriptionFieldNames = [...]string{
	"Title",
	"Brand",
	"Designer",
	"Description",
	"BulletPoint",
	"ItemDimensions",
	"PackageDimensions",
	"PackageWeight",
	"ShippingWeight",
	"MerchantCatalogNumber",
	"MSRP",
	"MaxOrderQuantity",
	"SerialNumberRequired",
	"Prop65",
	"LegalDisclaimer",
	"Manufacturer",
	"MfrPartNumber",
	"SearchTerms",
	"PlatinumKeywords",
	"RecommendedBrowseNode",
	"Memorabilia",
	"Autographed",
	"UsedFor",
	"ItemType",
	"OtherItemAttributes",
	"TargetAudience",
	"SubjectContent",
	"IsGiftWrapAvailable",
	"IsGiftMessageAvailable",
	"IsDiscontinuedByManufacturer",
	"MaxAggregateShipQuantity",
}

// BaseFields 기본 속성 목록의 사본을 반환합니다.
func BaseFields() []Field {
	return fieldsOf(baseFieldNames[:])
}

// DescriptionFields 설명 속성 목록의 사본을 반환합니다.
func DescriptionFields() []Field {
	return fieldsOf(descriptionFieldNames[:])
}

func fieldsOf(names []string) []Field {
	fields := make([]Field, len(names))
	for i, name := range names {
		fields[i] = F(name)
	}
	return fields
}
