package chain

// Minimal ABI fragments for the two contracts the flow touches. The vault
// is an external program; only the entry points the service calls are
// declared here.

const erc20ABIJSON = `[
	{"name":"allowance","type":"function","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"name":"approve","type":"function","stateMutability":"nonpayable","inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"name":"balanceOf","type":"function","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]}
]`

const vaultABIJSON = `[
	{"name":"contribute","type":"function","stateMutability":"nonpayable","inputs":[{"name":"challengeId","type":"uint256"},{"name":"amount","type":"uint256"}],"outputs":[]},
	{"name":"createChallenge","type":"function","stateMutability":"nonpayable","inputs":[{"name":"name","type":"string"},{"name":"targetAmount","type":"uint256"},{"name":"endDate","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
	{"name":"getUserProgress","type":"function","stateMutability":"view","inputs":[{"name":"challengeId","type":"uint256"},{"name":"user","type":"address"}],"outputs":[{"name":"contribution","type":"uint256"},{"name":"target","type":"uint256"}]},
	{"name":"withdrawFromChallenge","type":"function","stateMutability":"nonpayable","inputs":[{"name":"challengeId","type":"uint256"}],"outputs":[]},
	{"name":"balanceOf","type":"function","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]}
]`
