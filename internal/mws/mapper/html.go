package mapper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelector 텍스트로 변환할 때 앞뒤 단어가 붙지 않도록 공백을 끼워 넣을 요소
const blockSelector = "br, p, div, li, tr, td, th, h1, h2, h3, h4, h5, h6"

// PlainText HTML이 섞인 값을 태그 없는 한 줄 텍스트로 직렬화하는 Serializer입니다.
//
// 엔티티는 디코딩되고 script, style 요소는 내용까지 제거됩니다. 연속된 공백은 하나로 축약합니다.
// 태그나 엔티티가 없는 값은 Serialize 결과를 그대로 반환합니다.
func PlainText(value any) string {
	s := Serialize(value)
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}

	doc.Find("script, style").Remove()
	doc.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		sel.AfterHtml(" ")
	})

	return strings.Join(strings.Fields(doc.Text()), " ")
}
