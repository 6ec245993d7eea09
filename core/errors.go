package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message），可携带底层原因（Err）
//   - 支持错误检查函数（IsXXX）
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "UNAVAILABLE"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "recall", "engine"）
	Err     error  // 底层原因（可选，用于诊断）
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.Err }

// GetDomainError 获取 DomainError，如果不是则返回 nil。
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误。
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound      = "NOT_FOUND"      // 资源不存在
	ErrorCodeNotSupported  = "NOT_SUPPORTED"  // 操作不支持
	ErrorCodeUnavailable   = "UNAVAILABLE"    // 服务不可用
	ErrorCodeInvalidInput  = "INVALID_INPUT"  // 输入无效
	ErrorCodeInternalError = "INTERNAL_ERROR" // 内部错误
)

// 模块名称常量
const (
	ModuleStore   = "store"   // 存储模块
	ModuleRecall  = "recall"  // 召回/聚合模块
	ModuleEngine  = "engine"  // 引擎外层
	ModuleFeature = "feature" // 特征/兴趣模块
)

// NewAllSourcesFailed 构造“推荐不可用”错误：所有召回源都失败时的唯一对外失败路径。
// cause 携带最后一个底层错误，便于诊断；单个源失败永远不会走到这里。
func NewAllSourcesFailed(cause error) *DomainError {
	return &DomainError{
		Module:  ModuleRecall,
		Code:    ErrorCodeUnavailable,
		Message: "recommendations unavailable: all content sources failed",
		Err:     cause,
	}
}

// IsNotFound 检查错误是否为 NOT_FOUND。
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsNotSupported 检查错误是否为 NOT_SUPPORTED。
func IsNotSupported(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotSupported
	}
	return false
}

// IsUnavailable 检查错误是否为 UNAVAILABLE。
func IsUnavailable(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeUnavailable
	}
	return false
}

// Store 层通用错误（由 store 包的各实现返回）。
var (
	ErrStoreNotFound     = NewDomainError(ModuleStore, ErrorCodeNotFound, "key not found")
	ErrStoreNotSupported = NewDomainError(ModuleStore, ErrorCodeNotSupported, "operation not supported")
)

// IsStoreNotFound 检查错误是否为存储层的 NOT_FOUND。
func IsStoreNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Module == ModuleStore && domainErr.Code == ErrorCodeNotFound
	}
	return false
}
