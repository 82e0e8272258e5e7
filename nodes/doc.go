/*
包 nodes 实现面向节点图宿主的缓存文本编码节点.

# 概述

三个变体，控制流一致：推导键 → 查有界缓存 → 命中直接返回（Flux 哈希
变体会原地更新 guidance）→ 未命中调用编码协作者、写入缓存、必要时
淘汰最旧记录.

  - CLIPTextEncodeCached：单文本，键 = hash(text + modelID).
  - FluxTextEncodeCached：双文本，键 = hash(clip_l + t5xxl + modelID)，
    guidance 属于元数据、不参与键.
  - FluxTextEncode：单槽简化变体，保留上一次调用的原始输入并按相等
    比较，无哈希、无上限.

# 输入声明

每个节点通过 Spec() 暴露输入字段的声明元数据（名称、类型、默认值、
取值范围、multiline 标记），供宿主构建 UI；取值范围仅为声明，缓存
逻辑不做校验.Registry 按节点类名组织工厂与展示名，对应宿主的节点
注册表.
*/
package nodes
