package feed

import (
	"encoding/xml"

	"github.com/darkkaiser/mws-feed/internal/mws/mapper"
)

// envelope AmazonEnvelope 루트 요소
type envelope struct {
	XMLName        xml.Name `xml:"AmazonEnvelope"`
	XSINamespace   string   `xml:"xmlns:xsi,attr"`
	SchemaLocation string   `xml:"xsi:noNamespaceSchemaLocation,attr"`

	Header          header      `xml:"Header"`
	MessageType     MessageType `xml:"MessageType"`
	PurgeAndReplace bool        `xml:"PurgeAndReplace"`
	Messages        []message   `xml:"Message"`
}

type header struct {
	DocumentVersion    string `xml:"DocumentVersion"`
	MerchantIdentifier string `xml:"MerchantIdentifier"`
}

type message struct {
	MessageID     int            `xml:"MessageID"`
	OperationType OperationType  `xml:"OperationType"`
	Product       mapper.Element `xml:"Product"`
}
