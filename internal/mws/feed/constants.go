package feed

const (
	// DocumentVersion 피드 문서 헤더의 문서 버전
	DocumentVersion = "1.01"

	// SchemaLocation 봉투 요소가 참조하는 스키마 파일 이름
	SchemaLocation = "amzn-envelope.xsd"

	// XMLSchemaInstanceNamespace xsi 접두사의 네임스페이스
	XMLSchemaInstanceNamespace = "http://www.w3.org/2001/XMLSchema-instance"
)

// OperationType 메시지가 대상 상품에 수행할 작업의 유형입니다.
type OperationType string

const (
	OperationUpdate        OperationType = "Update"
	OperationDelete        OperationType = "Delete"
	OperationPartialUpdate OperationType = "PartialUpdate"
)

// Valid 알려진 작업 유형인지 여부를 반환합니다.
func (o OperationType) Valid() bool {
	switch o {
	case OperationUpdate, OperationDelete, OperationPartialUpdate:
		return true
	}
	return false
}

// String fmt.Stringer 인터페이스를 구현합니다.
func (o OperationType) String() string {
	return string(o)
}

// MessageType 피드 문서가 담는 메시지의 종류입니다.
type MessageType string

// MWS 피드의 메시지 종류
const (
	MessageTypeFulfillmentCenter    MessageType = "FulfillmentCenter"
	MessageTypeInventory            MessageType = "Inventory"
	MessageTypeListings             MessageType = "Listings"
	MessageTypeOrderAcknowledgement MessageType = "OrderAcknowledgement"
	MessageTypeOrderAdjustment      MessageType = "OrderAdjustment"
	MessageTypeOrderFulfillment     MessageType = "OrderFulfillment"
	MessageTypeOverride             MessageType = "Override"
	MessageTypePrice                MessageType = "Price"
	MessageTypeProcessingReport     MessageType = "ProcessingReport"
	MessageTypeProduct              MessageType = "Product"
	MessageTypeProductImage         MessageType = "ProductImage"
	MessageTypeRelationship         MessageType = "Relationship"
	MessageTypeSettlementReport     MessageType = "SettlementReport"
)
