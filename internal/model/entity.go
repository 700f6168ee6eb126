package model

// Key 实体主键约束
type Key interface {
	~uint | ~uint32 | ~uint64 | ~int | ~int32 | ~int64
}

// Entity 可被通用仓储与控制器处理的实体，由指针接收者实现
type Entity[ID Key] interface {
	GetID() ID
	SetID(ID)
}
