// Package contract contains the ABI and a thin binding for the Donly
// marketplace contract. Regenerate with abigen if the contract surface
// changes:
//
//	abigen --abi donly.abi --pkg contract --out donly_gen.go
package contract

// DonlyABI is the ABI of the Donly contract. This is the richest deployed
// variant: products carry an owner, campaigns carry a destination wallet and
// funds can be withdrawn by the campaign admin.
const DonlyABI = `[
	{
		"constant": false,
		"inputs": [{"name": "name", "type": "string"}],
		"name": "createCategory",
		"outputs": [{"name": "categoryId", "type": "uint256"}],
		"payable": false,
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [
			{"name": "categoryId",        "type": "uint256"},
			{"name": "destinationWallet", "type": "address"},
			{"name": "maxSoldProducts",   "type": "uint256"}
		],
		"name": "createCampaign",
		"outputs": [{"name": "campaignId", "type": "uint256"}],
		"payable": false,
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [
			{"name": "campaignId", "type": "uint256"},
			{"name": "categoryId", "type": "uint256"},
			{"name": "price",      "type": "uint256"}
		],
		"name": "addProduct",
		"outputs": [{"name": "productId", "type": "uint256"}],
		"payable": false,
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [{"name": "productId", "type": "uint256"}],
		"name": "purchaseProduct",
		"outputs": [{"name": "", "type": "bool"}],
		"payable": true,
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [{"name": "campaignId", "type": "uint256"}],
		"name": "withdrawCampaignFunds",
		"outputs": [{"name": "", "type": "bool"}],
		"payable": false,
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [{"name": "categoryId", "type": "uint256"}],
		"name": "deactivateCategory",
		"outputs": [],
		"payable": false,
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [{"name": "productId", "type": "uint256"}],
		"name": "deactivateProduct",
		"outputs": [{"name": "", "type": "bool"}],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [],
		"name": "categoryCount",
		"outputs": [{"name": "", "type": "uint256"}],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [],
		"name": "campaignCount",
		"outputs": [{"name": "", "type": "uint256"}],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [],
		"name": "productCount",
		"outputs": [{"name": "", "type": "uint256"}],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "categoryId", "type": "uint256"}],
		"name": "getCategoryNameHash",
		"outputs": [{"name": "", "type": "bytes32"}],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "categoryId", "type": "uint256"}],
		"name": "getCategoryCreator",
		"outputs": [{"name": "", "type": "address"}],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "categoryId", "type": "uint256"}],
		"name": "getCategoryIsActive",
		"outputs": [{"name": "", "type": "bool"}],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "campaignId", "type": "uint256"}],
		"name": "getCampaignData",
		"outputs": [
			{"name": "categoryId",        "type": "uint256"},
			{"name": "admin",             "type": "address"},
			{"name": "isActive",          "type": "bool"},
			{"name": "soldProductsCount", "type": "uint256"},
			{"name": "maxSoldProducts",   "type": "uint256"},
			{"name": "destinationWallet", "type": "address"}
		],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "productId", "type": "uint256"}],
		"name": "getProductCampaignId",
		"outputs": [{"name": "", "type": "uint256"}],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "productId", "type": "uint256"}],
		"name": "getProductPrice",
		"outputs": [{"name": "", "type": "uint256"}],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "productId", "type": "uint256"}],
		"name": "getProductIsActive",
		"outputs": [{"name": "", "type": "bool"}],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "productId", "type": "uint256"}],
		"name": "getProductIsSold",
		"outputs": [{"name": "", "type": "bool"}],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "productId", "type": "uint256"}],
		"name": "getProductOwner",
		"outputs": [{"name": "", "type": "address"}],
		"payable": false,
		"type": "function"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true,  "name": "categoryId", "type": "uint256"},
			{"indexed": true,  "name": "creator",    "type": "address"},
			{"indexed": false, "name": "nameHash",   "type": "bytes32"}
		],
		"name": "CategoryCreated",
		"type": "event"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true,  "name": "campaignId",        "type": "uint256"},
			{"indexed": true,  "name": "admin",             "type": "address"},
			{"indexed": false, "name": "destinationWallet", "type": "address"},
			{"indexed": false, "name": "maxSoldProducts",   "type": "uint256"}
		],
		"name": "CampaignCreated",
		"type": "event"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true,  "name": "productId",  "type": "uint256"},
			{"indexed": true,  "name": "campaignId", "type": "uint256"},
			{"indexed": false, "name": "price",      "type": "uint256"}
		],
		"name": "ProductAdded",
		"type": "event"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true,  "name": "productId", "type": "uint256"},
			{"indexed": true,  "name": "buyer",     "type": "address"},
			{"indexed": false, "name": "price",     "type": "uint256"}
		],
		"name": "ProductPurchased",
		"type": "event"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true,  "name": "campaignId", "type": "uint256"},
			{"indexed": false, "name": "amount",     "type": "uint256"}
		],
		"name": "FundsWithdrawn",
		"type": "event"
	}
]`
