package calculator

import "errors"

// 计算过程中的错误，统一以 "calculator: " 开头，调用方通过 errors.Is 判断

var (
	// ErrInvalidConfig 构造参数不合法（长度、时间、初始温度非正，网格点数过少，时间步为 0）
	ErrInvalidConfig = errors.New("calculator: invalid configuration")

	// ErrNumericalInstability Thomas 消元时主元接近 0，或者结果出现 NaN / Inf
	ErrNumericalInstability = errors.New("calculator: numerical instability")

	// ErrNoSuchTimeStep 请求的时间步不在 [0, M) 范围内
	ErrNoSuchTimeStep = errors.New("calculator: no such time step")

	// ErrNotSolved 在 Solve 之前读取 t > 0 的温度数据
	ErrNotSolved = errors.New("calculator: not solved yet")

	// ErrDimensionMismatch 三对角方程组的系数长度不一致
	ErrDimensionMismatch = errors.New("calculator: dimension mismatch")
)
