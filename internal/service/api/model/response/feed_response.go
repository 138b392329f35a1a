package response

import "github.com/darkkaiser/mws-feed/internal/mws/schema"

// FeedResponse 피드 생성/검증 결과 응답
type FeedResponse struct {
	ResultCode      int    `json:"result_code"`
	MerchantID      string `json:"merchant_id"`
	PurgeAndReplace bool   `json:"purge_and_replace"`
	Messages        int    `json:"messages"`

	// Path 저장된 피드 문서의 경로 (저장하지 않았으면 생략)
	Path string `json:"path,omitempty"`

	Validated  bool               `json:"validated"`
	Valid      bool               `json:"valid"`
	Violations []schema.Violation `json:"violations"`

	// Document 생성된 XML 문서 (format=json 생성 요청에서만 포함)
	Document string `json:"document,omitempty"`
}
