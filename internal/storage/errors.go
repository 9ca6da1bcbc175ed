package storage

import (
	"errors"

	"github.com/minio/minio-go/v7"
)

// IsNoSuchKey 判断错误是否为对象不存在。
func IsNoSuchKey(err error) bool {
	return hasErrorCode(err, "NoSuchKey")
}

// IsNoSuchBucket 判断错误是否为 Bucket 不存在。
func IsNoSuchBucket(err error) bool {
	return hasErrorCode(err, "NoSuchBucket")
}

func hasErrorCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return resp.Code == code
	}
	return minio.ToErrorResponse(err).Code == code
}
