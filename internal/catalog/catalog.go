// Package catalog 피드의 원천 데이터인 상품 카탈로그(JSON)를 읽어 매퍼가 조회할 수 있는 레코드로 변환합니다.
//
// 카탈로그는 상품 객체의 배열이거나, 헤더 키와 products 배열을 가진 객체입니다.
//
//	{
//	  "merchant_id": "M123",
//	  "purge_and_replace": false,
//	  "operation_type": "Update",
//	  "products": [
//	    { "sku": "ABC-1", "title": "Widget", "amazon_profile": { "title": "Widget (Amazon)" } }
//	  ]
//	}
package catalog

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"

	applog "github.com/darkkaiser/mws-feed/pkg/log"
	"github.com/darkkaiser/mws-feed/pkg/maputil"
	"github.com/tidwall/gjson"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// component 카탈로그 로그의 컴포넌트 이름
const component = "catalog"

const (
	// productsKey 헤더 형식 카탈로그에서 상품 배열을 담는 키
	productsKey = "products"

	// profileKey 상품의 Amazon 전용 속성을 담는 키
	profileKey = "amazon_profile"

	// operationKey 상품별 작업 유형을 지정하는 키
	operationKey = "operation_type"
)

// utf8BOM 일부 편집기가 파일 앞에 기록하는 UTF-8 바이트 순서 표식
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Header 카탈로그 문서 수준의 설정입니다. 값이 없는 항목은 애플리케이션 설정을 따릅니다.
type Header struct {
	MerchantID      string `json:"merchant_id"`
	PurgeAndReplace *bool  `json:"purge_and_replace"`
	OperationType   string `json:"operation_type"`
}

// Catalog 해석된 카탈로그 문서입니다.
type Catalog struct {
	Header
	Products []*Product
}

// Load 파일을 읽어 카탈로그를 해석합니다. encoding이 비어 있거나 utf-8이면 변환 없이 읽습니다.
func Load(path, encoding string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewErrCatalogNotFound(path, err)
		}
		return nil, NewErrCatalogReadFailed(path, err)
	}
	defer f.Close()

	r, err := decodingReader(f, encoding)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, NewErrCatalogReadFailed(path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"path":     path,
		"encoding": encoding,
		"products": len(c.Products),
	}).Info("카탈로그 로드 완료")

	return c, nil
}

// decodingReader encoding으로 기록된 데이터를 UTF-8로 변환하며 읽는 Reader를 반환합니다.
func decodingReader(r io.Reader, encoding string) (io.Reader, error) {
	if encoding == "" {
		return r, nil
	}

	enc, name := charset.Lookup(encoding)
	if enc == nil {
		return nil, NewErrUnsupportedEncoding(encoding)
	}
	if name == "utf-8" {
		return r, nil
	}

	return transform.NewReader(r, enc.NewDecoder()), nil
}

// Decode encoding으로 기록된 JSON 데이터를 카탈로그로 해석합니다. (예: HTTP 요청의 charset)
func Decode(data []byte, encoding string) (*Catalog, error) {
	r, err := decodingReader(bytes.NewReader(data), encoding)
	if err != nil {
		return nil, err
	}

	decoded, err := io.ReadAll(r)
	if err != nil {
		return nil, NewErrDecodeFailed(encoding, err)
	}

	return Parse(decoded)
}

// Parse UTF-8 JSON 데이터를 카탈로그로 해석합니다.
func Parse(data []byte) (*Catalog, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !gjson.ValidBytes(data) {
		return nil, NewErrInvalidJSON()
	}

	root := gjson.ParseBytes(data)

	c := &Catalog{}
	products := root
	if root.IsObject() {
		header, err := parseHeader(root)
		if err != nil {
			return nil, err
		}
		c.Header = *header

		products = root.Get(productsKey)
		if !products.Exists() {
			return c, nil
		}
	}
	if !products.IsArray() {
		return nil, NewErrInvalidProducts()
	}

	for i, item := range products.Array() {
		if !item.IsObject() {
			return nil, NewErrInvalidProduct(i)
		}
		p, err := newProduct(i, item)
		if err != nil {
			return nil, err
		}
		c.Products = append(c.Products, p)
	}

	return c, nil
}

// parseHeader products를 제외한 최상위 키를 Header로 변환합니다.
func parseHeader(root gjson.Result) (*Header, error) {
	values := make(map[string]any)
	root.ForEach(func(k, v gjson.Result) bool {
		if k.String() != productsKey {
			values[k.String()] = valueOf(v)
		}
		return true
	})

	header, err := maputil.Decode[Header](values)
	if err != nil {
		return nil, NewErrInvalidHeader(err)
	}
	return header, nil
}
