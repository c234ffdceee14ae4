package dto

// SyncResultDTO 每日同步结果
type SyncResultDTO struct {
	Success           bool   `json:"success"`
	AccountsProcessed int    `json:"accountsProcessed"`
	AccountsFailed    int    `json:"accountsFailed"`
	AccountsSkipped   int    `json:"accountsSkipped"`
	Error             string `json:"error,omitempty"`
}

// AccountSyncDTO 单账号同步结果
type AccountSyncDTO struct {
	AccountID      uint64 `json:"accountId"`
	PostsChecked   int    `json:"postsChecked"`
	PostsRecorded  int    `json:"postsRecorded"`
	BucketsUpdated int    `json:"bucketsUpdated"`
}

// AccountPathDTO 路径参数
type AccountPathDTO struct {
	AccountID uint64 `uri:"account_id" validate:"required,gt=0"`
}
