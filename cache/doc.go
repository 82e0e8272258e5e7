/*
包 cache 提供条件化结果的有界缓存，避免对未变更文本重复执行昂贵的
模型编码.

# 概述

同一段提示词在图执行中会被反复求值.本包以文本内容与模型实例标识的
SHA-256 摘要为键，将 (嵌入, 辅助输出) 对保存在按插入顺序排列的有界
映射中，命中时直接返回缓存结果.

# 核心类型

  - Key：由文本字段与 ModelID 拼接计算缓存键的纯函数.
  - Entry：单条缓存记录，含模型标识、原始文本、嵌入与辅助输出.
  - ConditioningCache：FIFO 有界缓存，上限可逐调用调整.
  - Stats：命中/未命中/淘汰计数.

# 淘汰语义

Insert 采用先插入、后按插入前大小判断淘汰的顺序：当插入前大小已达
上限时移除最旧的一个键.因此映射在单次未命中内可能短暂持有上限 +1
条记录，随后回落.该行为与上游实现保持一致，测试按此断言.

# 并发

宿主的图执行器串行调用同一节点，缓存不做加锁，不支持并发使用.
*/
package cache
