/*
包 testutil 提供测试辅助工具与编码协作者的模拟实现.

# 核心内容

  - TestContext 等上下文辅助函数.
  - mocks.Clip：encoder.Encoder 的确定性模拟，支持调用计数与错误注入，
    可选 tiktoken 分词.
*/
package testutil
