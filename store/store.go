// Package store 提供 core.Store / core.KeyValueStore 的具体实现。
// 接口定义在 core 包，这里只有基础设施实现：
//
//	var kv core.KeyValueStore = store.NewMemoryStore()
//	var kv core.KeyValueStore = store.NewRedisStore("127.0.0.1:6379", 0)
package store
